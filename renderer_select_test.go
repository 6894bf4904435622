package ambient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitReady(t *testing.T, s *Selector) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("probe did not finish")
	}
}

func TestSelectorUnresolvedUntilProbed(t *testing.T) {
	s := NewSelector(func(context.Context) bool { return true }, nil)
	assert.Equal(t, ModeUnresolved, s.Resolve(core.Grid))
	assert.Equal(t, ReasonNone, s.Reason())

	s.ProbeAsync(context.Background())
	waitReady(t, s)
	assert.Equal(t, ModeHardware, s.Resolve(core.Grid))
	assert.Equal(t, ModeSoftware, s.Resolve(core.Helix))
	assert.Equal(t, ReasonArrangementUnsupported, s.Reason())
	assert.Equal(t, ModeHardware, s.Resolve(core.Wave))
	assert.Equal(t, ReasonNone, s.Reason())
}

func TestSelectorStaleProbeDropped(t *testing.T) {
	release := make(chan struct{})
	s := NewSelector(func(context.Context) bool { <-release; return true }, nil)
	s.ProbeAsync(context.Background())
	s.Stop()
	close(release)
	waitReady(t, s)

	assert.Equal(t, ModeUnresolved, s.Resolve(core.Grid))
}

func TestSelectorStopCancelsProbeContext(t *testing.T) {
	s := NewSelector(func(ctx context.Context) bool {
		<-ctx.Done()
		return true
	}, nil)
	s.ProbeAsync(context.Background())
	s.Stop()
	waitReady(t, s)
	assert.Equal(t, ModeUnresolved, s.Mode())
}

func TestSelectorProbePanicMeansSoftware(t *testing.T) {
	s := NewSelector(func(context.Context) bool { panic("driver exploded") }, nil)
	s.ProbeAsync(context.Background())
	waitReady(t, s)
	assert.Equal(t, ModeSoftware, s.Resolve(core.Radial))
	assert.Equal(t, ReasonHardwareUnavailable, s.Reason())
}

func TestSelectorNilProbe(t *testing.T) {
	s := NewSelector(nil, nil)
	s.ProbeAsync(context.Background())
	waitReady(t, s)
	assert.Equal(t, ModeSoftware, s.Resolve(core.Grid))
}

func TestSelectorDemoteIsPermanent(t *testing.T) {
	s := NewSelector(func(context.Context) bool { return true }, nil)
	s.ProbeAsync(context.Background())
	waitReady(t, s)
	require.Equal(t, ModeHardware, s.Resolve(core.Grid))

	cause := errors.New("device lost")
	s.Demote(cause)
	assert.Equal(t, ModeSoftware, s.Mode())
	assert.Equal(t, ReasonHardwareFailed, s.Reason())
	assert.Equal(t, cause, s.Cause())

	for _, a := range core.Arrangements() {
		assert.Equal(t, ModeSoftware, s.Resolve(a), a.String())
	}
	s.Resolve(core.Helix)
	assert.Equal(t, ReasonArrangementUnsupported, s.Reason())
	s.Resolve(core.Grid)
	assert.Equal(t, ReasonHardwareFailed, s.Reason())
}

func TestRendererModeString(t *testing.T) {
	assert.Equal(t, "unresolved", ModeUnresolved.String())
	assert.Equal(t, "hardware", ModeHardware.String())
	assert.Equal(t, "software", ModeSoftware.String())
}

func TestTargetGuard(t *testing.T) {
	var g targetGuard
	require.NoError(t, g.claim(ModeHardware))
	require.NoError(t, g.claim(ModeHardware))
	assert.ErrorIs(t, g.claim(ModeSoftware), ErrTargetInUse)

	g.release(ModeSoftware)
	assert.Equal(t, ModeHardware, g.holder())
	g.release(ModeHardware)
	require.NoError(t, g.claim(ModeSoftware))
	assert.Equal(t, ModeSoftware, g.holder())
}
