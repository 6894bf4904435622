package geom

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

const pi = math.Pi

func sincos(a float64) (float32, float32) {
	s, c := math.Sincos(a)
	return float32(s), float32(c)
}

// Placement is one instance of a closed-form layout in the unit cube.
// Mix selects between the primary and secondary colour.
type Placement struct {
	Pos   mgl32.Vec3
	Scale float32
	Mix   float32
}

// Layout returns the closed-form position of instance i of n for the four
// regular arrangements. Other arrangements fall back to Rings.
func Layout(a core.Arrangement, i, n int) Placement {
	switch a {
	case core.Spiral:
		return SpiralAt(i, n)
	case core.Grid:
		return GridAt(i, n)
	case core.Wave:
		return CarpetAt(i, n)
	default:
		return RingsAt(i, n)
	}
}

// Layouts evaluates Layout for every instance.
func Layouts(a core.Arrangement, n int) []Placement {
	out := make([]Placement, n)
	for i := range out {
		out[i] = Layout(a, i, n)
	}
	return out
}

// RingsAt places instances on concentric rings in the XY plane. Ring k holds
// 2k+1 instances so ring spacing stays roughly even.
func RingsAt(i, n int) Placement {
	k := int(math.Sqrt(float64(i)))
	j := i - k*k
	rings := int(math.Ceil(math.Sqrt(float64(n))))
	if rings < 1 {
		rings = 1
	}
	radius := float64(k+1) / float64(rings)
	s, c := sincos(2 * pi * float64(j) / float64(2*k+1))
	r := float32(radius)
	return Placement{
		Pos:   mgl32.Vec3{c * r, s * r, float32(0.08 * math.Sin(float64(k)*0.9))},
		Scale: float32((0.9 - 0.4*radius) / float64(rings)),
		Mix:   r,
	}
}

const spiralTurns = 5

// SpiralAt places instances along a spiral that widens as it rises.
func SpiralAt(i, n int) Placement {
	t := frac(i, n)
	s, c := sincos(t * spiralTurns * 2 * pi)
	r := float32(0.12 + 0.88*t)
	return Placement{
		Pos:   mgl32.Vec3{c * r, float32(-0.9 + 1.8*t), s * r},
		Scale: float32((0.5 + 0.5*t) * math.Min(0.15, math.Max(0.02, 12/float64(max(n, 1))))),
		Mix:   float32(t),
	}
}

// GridAt fills a cube of side ceil(cbrt(n)) in x, then y, then z order.
func GridAt(i, n int) Placement {
	side := int(math.Ceil(math.Cbrt(float64(n))))
	if side < 1 {
		side = 1
	}
	ix, iy, iz := i%side, (i/side)%side, i/(side*side)
	return Placement{
		Pos:   mgl32.Vec3{axis(ix, side), axis(iy, side), axis(iz, side)},
		Scale: float32(1.6 / float64(side)),
		Mix:   float32(iz) / float32(side),
	}
}

const (
	CarpetAmplitude = 0.18
	CarpetFrequency = 3.0
)

// CarpetAt lays instances on a square in the XZ plane whose height is
// A·sin(f·x)·cos(f·z).
func CarpetAt(i, n int) Placement {
	side := int(math.Ceil(math.Sqrt(float64(n))))
	if side < 1 {
		side = 1
	}
	ix, iz := i%side, i/side
	x, z := float64(axis(ix, side)), float64(axis(iz, side))
	y := CarpetHeight(x, z, 0)
	return Placement{
		Pos:   mgl32.Vec3{float32(x), float32(y), float32(z)},
		Scale: float32(1.4 / float64(side)),
		Mix:   float32((y/CarpetAmplitude + 1) / 2),
	}
}

// CarpetHeight is the carpet surface at phase t.
func CarpetHeight(x, z, t float64) float64 {
	return CarpetAmplitude * math.Sin(CarpetFrequency*x+t) * math.Cos(CarpetFrequency*z+t)
}

func axis(i, side int) float32 {
	if side <= 1 {
		return 0
	}
	return float32(float64(i)/float64(side-1)*2 - 1)
}

func frac(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
