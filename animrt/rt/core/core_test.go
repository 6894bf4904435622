package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArrangement(t *testing.T) {
	for _, a := range Arrangements() {
		got, err := ParseArrangement(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	a, err := ParseArrangement("fish_school")
	require.NoError(t, err)
	assert.Equal(t, FishSchool, a)

	_, err = ParseArrangement("teapot")
	assert.ErrorIs(t, err, ErrUnknownArrangement)
}

func TestHardwareCapable(t *testing.T) {
	var hw []Arrangement
	for _, a := range Arrangements() {
		if a.HardwareCapable() {
			hw = append(hw, a)
		}
	}
	assert.Equal(t, []Arrangement{Radial, Spiral, Grid, Wave}, hw)
}

func TestNormalizeDoesNotMutate(t *testing.T) {
	p := DefaultParams()
	p.Arrangement = Pendulums
	p.InstanceCount = 400
	p.Metallic = 3
	p.CameraSpeed = -1

	n := p.Normalize()
	assert.Equal(t, 35, n.InstanceCount)
	assert.Equal(t, 1.0, n.Metallic)
	assert.Equal(t, 1.0, n.CameraSpeed)
	assert.Equal(t, 400, p.InstanceCount)
	assert.Equal(t, 3.0, p.Metallic)
}

func TestClampLowerBound(t *testing.T) {
	assert.Equal(t, 1, Grid.Clamp(0))
	assert.Equal(t, 1, Grid.Clamp(-10))
	assert.Equal(t, 120, Constellation.Clamp(5000))
}

func TestHSL(t *testing.T) {
	red := HSL(0, 1, 0.5)
	assert.InDelta(t, 1, red.R, 1e-9)
	assert.InDelta(t, 0, red.G, 1e-9)
	assert.InDelta(t, 0, red.B, 1e-9)

	green := HSL(1.0/3+2, 1, 0.5)
	assert.InDelta(t, 1, green.G, 1e-9)

	grey := HSL(0.7, 0, 0.4)
	assert.Equal(t, RGB{0.4, 0.4, 0.4}, grey)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, "#ff8000", c.Hex())

	c, err = ParseHex("0f0")
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 1, 0}, c)

	_, err = ParseHex("#12")
	assert.Error(t, err)

	_, err = ParseHex("#12zz99")
	assert.Error(t, err)
}

func TestHSLMatchesGG(t *testing.T) {
	for _, sl := range [][2]float64{{0, 0.5}, {0.5, 0.3}, {1, 0.5}, {0.8, 0.9}, {0.3, 0.1}} {
		for h := -1.0; h < 2; h += 0.05 {
			want := gg.HSL(h*360, sl[0], sl[1])
			got := HSL(h, sl[0], sl[1])
			assert.InDelta(t, want.R, got.R, 1e-9)
			assert.InDelta(t, want.G, got.G, 1e-9)
			assert.InDelta(t, want.B, got.B, 1e-9)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	a, b := RGB{0, 0.5, 1}, RGB{1, 0.5, 0}
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.InDelta(t, 0.5, a.Lerp(b, 0.5).R, 1e-12)
}

func TestProjector(t *testing.T) {
	p := NewProjector(200, 100)
	x, y, s, ok := p.Project(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)
	assert.Equal(t, 1.0, s)

	_, _, nearScale, _ := p.Project(1, 0, 1)
	_, _, farScale, _ := p.Project(1, 0, -1)
	assert.Greater(t, nearScale, farScale)

	_, _, _, ok = p.Project(0, 0, p.Focal)
	assert.False(t, ok)
}

func TestSortBackToFrontIsStable(t *testing.T) {
	type item struct {
		z  float64
		id int
	}
	items := []item{{2, 0}, {-1, 1}, {2, 2}, {0, 3}, {-1, 4}}
	SortBackToFront(items, func(it *item) float64 { return it.z })

	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	assert.Equal(t, []int{1, 4, 3, 0, 2}, ids)
}

func TestViewportMargin(t *testing.T) {
	v := Viewport{W: 100, H: 100, Margin: 10}
	assert.True(t, v.Visible(50, 50, 1))
	assert.True(t, v.Visible(-12, 50, 3))
	assert.False(t, v.Visible(-20, 50, 3))
	assert.False(t, v.Visible(50, 130, 5))
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, WrapAngle(-math.Pi), 1e-12)
	assert.InDelta(t, 0.25, WrapAngle(0.25+4*math.Pi), 1e-9)

	// crosses the ±π seam instead of sweeping through zero
	a := ApproachAngle(math.Pi-0.1, -math.Pi+0.1, 1000, 1)
	assert.InDelta(t, -math.Pi+0.1, a, 1e-9)
	half := ApproachAngle(math.Pi-0.1, -math.Pi+0.1, math.Ln2, 1)
	assert.InDelta(t, math.Pi, math.Abs(half), 1e-9)
}

func TestStepClock(t *testing.T) {
	c := NewStepClock()
	dt := c.Advance(2)
	assert.Equal(t, BaseStep*2, dt)
	c.Advance(0)
	assert.InDelta(t, BaseStep*3, c.Elapsed, 1e-15)
	assert.Equal(t, uint64(2), c.Frames)
}

func TestOrbitCamera(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{0, 0, -20})
	eye := cam.Eye(0, 1)
	d := eye.Sub(cam.Target)
	horiz := math.Hypot(float64(d.X()), float64(d.Z()))
	assert.InDelta(t, float64(cam.Radius), horiz, 1e-4)

	vp := cam.ViewProjection(1.5, 1, 16.0/9)
	clip := vp.Mul4x1(cam.Target.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-4)
	assert.InDelta(t, 0, ndc.Y(), 1e-4)
}
