package ambient

import (
	"context"
	"testing"
	"time"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ready(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.WaitReady(ctx))
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
		a         core.Arrangement
		mode      RendererMode
		reason    FallbackReason
	}{
		{"no hardware grid", false, core.Grid, ModeSoftware, ReasonHardwareUnavailable},
		{"no hardware helix", false, core.Helix, ModeSoftware, ReasonHardwareUnavailable},
		{"grid", true, core.Grid, ModeHardware, ReasonNone},
		{"radial", true, core.Radial, ModeHardware, ReasonNone},
		{"spiral", true, core.Spiral, ModeHardware, ReasonNone},
		{"wave", true, core.Wave, ModeHardware, ReasonNone},
		{"helix", true, core.Helix, ModeSoftware, ReasonArrangementUnsupported},
		{"pendulums", true, core.Pendulums, ModeSoftware, ReasonArrangementUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, reason := Decide(tt.supported, tt.a)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestEngineHardwareForGrid(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Sphere, 900))
	ready(t, e)

	assert.Equal(t, ModeHardware, e.Mode())
	assert.Empty(t, e.FallbackReason())
	hw := rig.last()
	require.NotNil(t, hw)
	assert.Equal(t, core.Sphere, hw.shape)
	assert.Equal(t, 900, hw.count)
	assert.Equal(t, core.Grid, hw.arrangement)
	assert.Nil(t, e.Image())

	require.NoError(t, e.Frame())
	require.NoError(t, e.Frame())
	assert.Equal(t, 2, hw.frames)
	assert.Equal(t, uint64(2), e.Stats().Frames)
}

func TestEngineSoftwareWithoutHardware(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, false, params(core.Grid, core.Cube, 100))
	ready(t, e)

	assert.Equal(t, ModeSoftware, e.Mode())
	assert.Equal(t, string(ReasonHardwareUnavailable), e.FallbackReason())
	assert.Empty(t, rig.built)

	require.NoError(t, e.Frame())
	assert.NotNil(t, e.Image())
	assert.Equal(t, 100, e.Stats().Population)
}

func TestEngineWaveToPendulumsReleasesBuffers(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Wave, core.Cube, 400))
	ready(t, e)
	require.NoError(t, e.Frame())

	hw := rig.last()
	require.NotNil(t, hw)
	assert.Equal(t, 400, hw.count)
	assert.Equal(t, core.Wave, hw.arrangement)
	assert.Equal(t, 400, e.Stats().Population)

	require.NoError(t, e.SetParams(params(core.Pendulums, core.Cube, 400)))

	assert.True(t, hw.released)
	assert.False(t, hw.geometryLive)
	assert.False(t, hw.instanceLive)
	assert.Equal(t, ModeSoftware, e.Mode())
	assert.Equal(t, string(ReasonArrangementUnsupported), e.FallbackReason())
	assert.Equal(t, 35, e.Stats().Population)
	assert.Equal(t, ModeSoftware, e.guard.holder())

	require.NoError(t, e.Frame())
	assert.NotNil(t, e.Image())
	assert.Equal(t, 1, hw.frames, "no hardware frame after the switch")
}

func TestEngineBackToHardware(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Radial, core.Cube, 200))
	ready(t, e)
	require.NoError(t, e.SetParams(params(core.Helix, core.Cube, 200)))
	require.NoError(t, e.SetParams(params(core.Spiral, core.Cube, 200)))

	require.Len(t, rig.built, 2)
	assert.True(t, rig.built[0].released)
	assert.False(t, rig.built[1].released)
	assert.Equal(t, ModeHardware, e.Mode())
	assert.False(t, e.soft.Active())
}

func TestEngineShapeChangeRebuildsGeometryOnly(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 300))
	ready(t, e)
	hw := rig.last()

	require.NoError(t, e.SetParams(params(core.Grid, core.Pyramid, 300)))
	assert.Equal(t, []string{"geometry", "instances", "drop-geometry", "geometry"}, hw.calls)
	s := e.Stats()
	assert.Equal(t, 2, s.GeometryBuilds)
	assert.Equal(t, 1, s.InstanceBuilds)

	require.NoError(t, e.SetParams(params(core.Grid, core.Pyramid, 301)))
	assert.Equal(t, "instances", hw.calls[len(hw.calls)-1])
	assert.Equal(t, "drop-instances", hw.calls[len(hw.calls)-2])
	assert.Equal(t, 2, e.Stats().InstanceBuilds)
}

func TestEngineDemotesOnInitFailure(t *testing.T) {
	rig := &hardwareRig{failErr: errNoDevice}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 50))
	ready(t, e)

	assert.Equal(t, ModeSoftware, e.Mode())
	assert.Equal(t, string(ReasonHardwareFailed), e.FallbackReason())
	assert.ErrorIs(t, e.sel.Cause(), errNoDevice)
	assert.Equal(t, 1, e.Stats().Demotions)
	assert.Equal(t, 50, e.Stats().Population)

	rig.failErr = nil
	require.NoError(t, e.SetParams(params(core.Radial, core.Cube, 50)))
	assert.Equal(t, ModeSoftware, e.Mode(), "hardware is not retried after a failure")
	assert.Empty(t, rig.built)
}

func TestEngineDemotesOnFrameFailure(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Wave, core.Cube, 64))
	ready(t, e)
	hw := rig.last()
	hw.failFrame = errNoDevice

	require.NoError(t, e.Frame())
	assert.True(t, hw.released)
	assert.Equal(t, ModeSoftware, e.Mode())
	assert.NotNil(t, e.Image())
}

func TestEngineProbesOnce(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 10))
	ready(t, e)
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Frame())
		require.NoError(t, e.SetParams(params(core.Radial, core.Cube, 10+i)))
	}
	ready(t, e)
	assert.Equal(t, int32(1), rig.probes.Load())
}

func TestEngineUnresolvedDrawsNothing(t *testing.T) {
	release := make(chan struct{})
	e := NewEngineBuilder().
		UseProbe(func(context.Context) bool { <-release; return true }).
		UseHardware((&hardwareRig{}).factory).
		Build()

	require.NoError(t, e.Frame())
	assert.Equal(t, ModeUnresolved, e.Mode())
	assert.Equal(t, uint64(0), e.Stats().Frames)
	assert.Nil(t, e.Image())

	close(release)
	ready(t, e)
	assert.Equal(t, ModeHardware, e.Mode())
	e.Stop()
}

func TestEngineResizeCapsPixelRatio(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 10))
	ready(t, e)

	require.NoError(t, e.Resize(400, 300, 3))
	hw := rig.last()
	assert.Equal(t, 800, hw.width)
	assert.Equal(t, 600, hw.height)

	require.NoError(t, e.Resize(400, 300, 3))
	assert.Equal(t, []string{"geometry", "instances", "resize"}, hw.calls, "same size is not a resize")
}

func TestEngineResizeRebuildsSoftwarePopulation(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, false, params(core.Tunnel, core.Cube, 200))
	ready(t, e)
	require.NoError(t, e.Frame())
	require.NoError(t, e.Frame())
	assert.Greater(t, e.Stats().Elapsed, 0.0)

	require.NoError(t, e.Resize(100, 80, 1.5))
	s := e.Stats()
	assert.Equal(t, 150, s.Width)
	assert.Equal(t, 120, s.Height)
	assert.Equal(t, 0.0, s.Elapsed)
	assert.Equal(t, 200, s.Population)
}

func TestBackingSize(t *testing.T) {
	tests := []struct {
		w, h, dpr float64
		ww, wh    int
	}{
		{100, 50, 1, 100, 50},
		{100, 50, 1.5, 150, 75},
		{100, 50, 2, 200, 100},
		{100, 50, 3, 200, 100},
		{100, 50, 0, 100, 50},
		{0, 0, 1, 1, 1},
		{33.3, 10, 1.25, 42, 13},
	}
	for _, tt := range tests {
		w, h := BackingSize(tt.w, tt.h, tt.dpr)
		assert.Equal(t, tt.ww, w)
		assert.Equal(t, tt.wh, h)
	}
}

func TestEngineStop(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 10))
	ready(t, e)
	e.Stop()
	e.Stop()

	assert.True(t, rig.last().released)
	assert.ErrorIs(t, e.Frame(), ErrStopped)
	assert.ErrorIs(t, e.SetParams(DefaultParams()), ErrStopped)
	assert.ErrorIs(t, e.Resize(10, 10, 1), ErrStopped)
	assert.Equal(t, ModeUnresolved, e.guard.holder())
}

func TestEngineParamsAreCopied(t *testing.T) {
	p := params(core.Pendulums, core.Cube, 1000)
	p.Metallic = 4
	e := newTestEngine(&hardwareRig{}, false, p)
	ready(t, e)

	assert.Equal(t, 1000, p.InstanceCount)
	assert.Equal(t, 4.0, p.Metallic)
	assert.Equal(t, 35, e.Params().InstanceCount)
	assert.Equal(t, 1.0, e.Params().Metallic)
}

func TestEngineRunsEveryArrangementInSoftware(t *testing.T) {
	e := newTestEngine(&hardwareRig{}, false, DefaultParams())
	ready(t, e)
	for _, a := range core.Arrangements() {
		require.NoError(t, e.SetParams(params(a, core.Sphere, 10_000)))
		require.NoError(t, e.Frame())
		s := e.Stats()
		assert.Equal(t, a, s.Arrangement)
		assert.LessOrEqual(t, s.Population, a.Cap(), a.String())
		assert.Positive(t, s.Population, a.String())
	}
}
