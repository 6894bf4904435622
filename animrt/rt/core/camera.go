package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles a target at a fixed radius with a slight vertical bob.
type OrbitCamera struct {
	Target mgl32.Vec3
	Radius float32
	Height float32
	Bob    float32
	FovY   float32
	Near   float32
	Far    float32
}

func NewOrbitCamera(target mgl32.Vec3) OrbitCamera {
	return OrbitCamera{
		Target: target,
		Radius: 22,
		Height: 4,
		Bob:    1.5,
		FovY:   60,
		Near:   0.1,
		Far:    1000,
	}
}

// Eye returns the camera position at the given time and orbit speed.
func (c OrbitCamera) Eye(t, speed float64) mgl32.Vec3 {
	angle := t * speed * 0.25
	bob := float64(c.Bob) * math.Sin(t*speed*0.5)
	return c.Target.Add(mgl32.Vec3{
		c.Radius * float32(math.Sin(angle)),
		c.Height + float32(bob),
		c.Radius * float32(math.Cos(angle)),
	})
}

func (c OrbitCamera) View(t, speed float64) mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(t, speed), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c OrbitCamera) ViewProjection(t, speed float64, aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
	return proj.Mul4(c.View(t, speed))
}
