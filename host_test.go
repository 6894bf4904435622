package ambient

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveHeadless(t *testing.T) {
	e := newTestEngine(&hardwareRig{}, false, params(core.Matrix, core.Cube, 200))
	ready(t, e)

	host := NewHeadlessHost(160, 90, 12)
	var statuses []string
	host.Capture = func(i int, img image.Image, status string) error {
		assert.Equal(t, image.Rect(0, 0, 160, 90), img.Bounds())
		statuses = append(statuses, status)
		return nil
	}
	require.NoError(t, Drive(context.Background(), host, e))

	assert.Equal(t, 12, host.Presented())
	assert.NotNil(t, host.Last())
	assert.Equal(t, uint64(12), e.Stats().Frames)
	require.Len(t, statuses, 12)
	assert.Contains(t, statuses[0], "matrix")
	assert.Contains(t, statuses[0], string(ReasonHardwareUnavailable))
}

func TestDriveHeadlessHonoursDPR(t *testing.T) {
	e := newTestEngine(&hardwareRig{}, false, params(core.Radial, core.Cube, 50))
	ready(t, e)
	host := NewHeadlessHost(100, 60, 2)
	host.DPR = 4
	require.NoError(t, Drive(context.Background(), host, e))
	assert.Equal(t, image.Rect(0, 0, 200, 120), host.Last().Bounds())
}

func TestDriveStopsOnHostMismatch(t *testing.T) {
	rig := &hardwareRig{}
	e := newTestEngine(rig, true, params(core.Grid, core.Cube, 50))
	ready(t, e)

	err := Drive(context.Background(), NewHeadlessHost(100, 100, 5), e)
	assert.ErrorIs(t, err, ErrHostMismatch)
}

func TestDriveStopsWhenEngineStopped(t *testing.T) {
	e := newTestEngine(&hardwareRig{}, false, DefaultParams())
	ready(t, e)
	e.Stop()
	err := Drive(context.Background(), NewHeadlessHost(100, 100, 5), e)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestHeadlessRunRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := NewHeadlessHost(10, 10, 5).Run(ctx, func(time.Duration) bool { calls++; return true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func newSimTerm(t *testing.T, cols, rows int) (*TermPresenter, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tp, err := NewTermPresenter(screen, nil)
	require.NoError(t, err)
	screen.SetSize(cols, rows)
	t.Cleanup(tp.Close)
	return tp, screen
}

func TestTermPresenterSize(t *testing.T) {
	tp, _ := newSimTerm(t, 20, 11)
	w, h, dpr := tp.Size()
	assert.Equal(t, 20*termOversample, w)
	assert.Equal(t, 10*2*termOversample, h)
	assert.Equal(t, 1.0, dpr)
	assert.True(t, tp.Supports(ModeSoftware))
	assert.False(t, tp.Supports(ModeHardware))
}

func TestTermPresenterHalfBlocks(t *testing.T) {
	tp, screen := newSimTerm(t, 8, 5)
	w, h, _ := tp.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 255, A: 255}}, image.Point{}, draw.Src)

	require.NoError(t, tp.Present(img, "status"))

	r, _, style, _ := screen.GetContent(3, 2)
	assert.Equal(t, halfBlock, r)
	fg, bg, _ := style.Decompose()
	fr, fgG, fb := fg.RGB()
	assert.Equal(t, []int32{255, 0, 0}, []int32{fr, fgG, fb})
	br, _, _ := bg.RGB()
	assert.Equal(t, int32(255), br)

	r, _, _, _ = screen.GetContent(0, 4)
	assert.Equal(t, 's', r)
}

func TestTermPresenterKeys(t *testing.T) {
	tp, _ := newSimTerm(t, 8, 5)
	var got []Command
	tp.OnCommand(func(c Command) { got = append(got, c) })

	tp.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	tp.handle(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	tp.handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	tp.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	assert.Equal(t, []Command{CmdNextArrangement, CmdNextShape, CmdQuit}, got)
}

func TestTermPresenterReaderExitsAfterRun(t *testing.T) {
	tp, screen := newSimTerm(t, 8, 5)
	require.NoError(t, tp.Run(context.Background(), func(time.Duration) bool { return false }))

	for range 64 {
		screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
		time.Sleep(time.Millisecond)
	}
	tp.Close()
	tp.Close()

	stopped := make(chan struct{})
	go func() {
		tp.readers.Wait()
		close(stopped)
	}()
	assert.Eventually(t, func() bool {
		select {
		case <-stopped:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
