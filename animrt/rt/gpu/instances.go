package gpu

import (
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gekko3d/ambient/animrt/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// WorldScale converts unit layouts to world units.
	WorldScale = 12
	// PushBack moves every instance away from the view origin along -z.
	PushBack = 20
)

// Center is the point the orbit camera circles.
var Center = mgl32.Vec3{0, 0, -PushBack}

// Instance is the per-instance record uploaded to the instance buffer.
type Instance struct {
	Offset [3]float32 `layout:"instance" format:"float3" location:"2"`
	Scale  float32    `layout:"instance" format:"float" location:"3"`
	Mix    float32    `layout:"instance" format:"float" location:"4"`
}

// BuildInstances lays out count instances for a. The count is clamped to
// the arrangement cap.
func BuildInstances(count int, a core.Arrangement) []Instance {
	n := a.Clamp(count)
	out := make([]Instance, n)
	for i := range out {
		p := geom.Layout(a, i, n)
		out[i] = Instance{
			Offset: p.Pos.Mul(WorldScale).Add(Center),
			Scale:  p.Scale * WorldScale,
			Mix:    p.Mix,
		}
	}
	return out
}

// Uniforms mirrors the WGSL uniform block, 128 bytes.
type Uniforms struct {
	ViewProj   [16]float32
	Time       float32
	Speed      float32
	Metallic   float32
	Pad        float32
	Primary    [4]float32
	Secondary  [4]float32
	Background [4]float32
}

const uniformSize = 128

// NewUniforms fills the uniform block for time t.
func NewUniforms(cam core.OrbitCamera, t float64, aspect float32, p core.Params) Uniforms {
	return Uniforms{
		ViewProj:   cam.ViewProjection(t, p.CameraSpeed, aspect),
		Time:       float32(t),
		Speed:      float32(p.CameraSpeed),
		Metallic:   float32(p.Metallic),
		Primary:    p.ColorPrimary.Vec4(),
		Secondary:  p.ColorSecondary.Vec4(),
		Background: p.BackgroundColor.Vec4(),
	}
}
