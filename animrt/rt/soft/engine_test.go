package soft

import (
	"testing"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(a core.Arrangement, n int) core.Params {
	p := core.DefaultParams()
	p.Arrangement = a
	p.InstanceCount = n
	return p
}

func TestResetClampsPopulation(t *testing.T) {
	e := NewEngine(nil, 1)
	e.Reset(params(core.Pendulums, 400), 320, 240)
	assert.Equal(t, 35, e.Len())
	assert.Equal(t, 35, e.Params().InstanceCount)
}

func TestFrameClearsToBackground(t *testing.T) {
	e := NewEngine(nil, 1)
	p := params(core.Radial, 50)
	p.BackgroundColor = core.RGB{R: 1, G: 0, B: 0}
	e.Reset(p, 200, 100)
	e.Frame()

	img := e.Image()
	require.NotNil(t, img)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	r, g, b, a := img.At(1, 1).RGBA()
	assert.InDelta(t, 0xffff, r, 0x200)
	assert.InDelta(t, 0, g, 0x200)
	assert.InDelta(t, 0, b, 0x200)
	assert.InDelta(t, 0xffff, a, 0x200)
	assert.InDelta(t, core.BaseStep, e.Time(), 1e-12)
}

func TestUpdateRebuildsOnlyOnStructuralChange(t *testing.T) {
	e := NewEngine(nil, 1)
	e.Reset(params(core.Tunnel, 100), 160, 120)
	pop := e.pop

	p := params(core.Tunnel, 100)
	p.ColorPrimary = core.RGB{R: 1}
	e.Update(p)
	assert.Same(t, pop, e.pop)
	assert.Equal(t, core.RGB{R: 1}, e.Params().ColorPrimary)

	e.Update(params(core.Tunnel, 80))
	assert.NotSame(t, pop, e.pop)
	assert.Equal(t, 80, e.Len())

	e.Update(params(core.Helix, 80))
	assert.Equal(t, core.Helix, e.Params().Arrangement)
}

func TestResizeReinitialises(t *testing.T) {
	e := NewEngine(nil, 1)
	e.Reset(params(core.Constellation, 60), 160, 120)
	pop := e.pop
	e.Resize(320, 200)
	assert.NotSame(t, pop, e.pop)
	assert.Equal(t, 320, e.Image().Bounds().Dx())
}

func TestDiscard(t *testing.T) {
	e := NewEngine(nil, 1)
	e.Reset(params(core.Grid, 64), 64, 64)
	require.True(t, e.Active())
	e.Discard()
	assert.False(t, e.Active())
	assert.Zero(t, e.Len())
	assert.Nil(t, e.Image())

	e.Frame()
	e.Update(params(core.Grid, 10))
	assert.False(t, e.Active())
}

func TestEveryArrangementRenders(t *testing.T) {
	e := NewEngine(nil, 1)
	for _, a := range core.Arrangements() {
		e.Reset(params(a, 64), 96, 64)
		for range 3 {
			e.Frame()
		}
		n, err := e.canvas.Errors()
		assert.Zero(t, n, "%s: %v", a, err)
	}
}
