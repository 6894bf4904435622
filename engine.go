// Package ambient animates procedural arrangements of shapes. Four regular
// arrangements can be drawn by a hardware instanced renderer; every
// arrangement can be drawn by the software engine.
package ambient

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gekko3d/ambient/animrt/rt/soft"
	"github.com/google/uuid"
)

// MaxDevicePixelRatio caps the backing-store scale.
const MaxDevicePixelRatio = 2

// HardwareRenderer is the instanced renderer as the engine sees it.
// gpu.Renderer implements it.
type HardwareRenderer interface {
	Resize(width, height int) error
	SetShape(shape core.Shape) error
	SetInstances(count int, a core.Arrangement) error
	RenderFrame(t float64, p core.Params) error
	Release()
}

// HardwareFactory builds a hardware renderer on the host's own target.
type HardwareFactory func(width, height int, label string, log Logger) (HardwareRenderer, error)

// Stats is a snapshot of the engine.
type Stats struct {
	ID             string
	Mode           RendererMode
	Reason         FallbackReason
	Arrangement    core.Arrangement
	Population     int // live bodies; may exceed InstanceCount up to arrange.MinPopulation
	Width, Height  int
	Frames         uint64
	Elapsed        float64
	LastFrame      time.Duration
	GeometryBuilds int
	InstanceBuilds int
	Demotions      int
}

type hardwareState struct {
	r           HardwareRenderer
	shape       core.Shape
	count       int
	arrangement core.Arrangement
	geometry    bool
	instances   bool
	clock       core.StepClock
}

// Engine drives one animation. Its methods are meant to be called from a
// single frame-loop goroutine; only the capability probe runs elsewhere.
type Engine struct {
	id      uuid.UUID
	log     Logger
	ctx     context.Context
	sel     *Selector
	factory HardwareFactory

	guard  targetGuard
	active RendererMode
	hw     *hardwareState
	soft   *soft.Engine

	params        Params
	width, height int

	stopped bool
	stats   Stats
}

// New returns an engine with default settings and no hardware renderer.
func New() *Engine { return NewEngineBuilder().Build() }

func (e *Engine) ID() string { return e.id.String() }

// Params returns the normalised parameters currently in effect.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces the parameter record. A change of arrangement, shape or
// instance count is applied before SetParams returns, so the next frame
// draws the new population.
func (e *Engine) SetParams(p Params) error {
	if e.stopped {
		return ErrStopped
	}
	e.params = p.Normalize()
	e.sel.ProbeAsync(e.ctx)
	e.reconcile()

	switch e.active {
	case ModeHardware:
		if err := e.syncHardware(); err != nil {
			e.failHardware(err)
		}
	case ModeSoftware:
		e.soft.Update(e.params)
	}
	return nil
}

// WaitReady starts the probe if needed and blocks until it has finished
// or ctx is done.
func (e *Engine) WaitReady(ctx context.Context) error {
	if e.stopped {
		return ErrStopped
	}
	e.sel.ProbeAsync(e.ctx)
	select {
	case <-e.sel.Ready():
		e.reconcile()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frame advances the active renderer by one fixed step and draws. While the
// probe is pending nothing is drawn.
func (e *Engine) Frame() error {
	if e.stopped {
		return ErrStopped
	}
	e.sel.ProbeAsync(e.ctx)
	e.reconcile()

	start := time.Now()
	switch e.active {
	case ModeHardware:
		if err := e.hardwareFrame(); err != nil {
			e.failHardware(err)
			e.soft.Frame()
		}
	case ModeSoftware:
		e.soft.Frame()
	default:
		return nil
	}
	e.stats.Frames++
	e.stats.LastFrame = time.Since(start)
	return nil
}

// Resize sets the layout size in CSS pixels. The backing store is
// css × min(dpr, MaxDevicePixelRatio). Any resize rebuilds the live
// population; the hardware path rebuilds its size-dependent attachments.
func (e *Engine) Resize(cssWidth, cssHeight, dpr float64) error {
	if e.stopped {
		return ErrStopped
	}
	w, h := BackingSize(cssWidth, cssHeight, dpr)
	if w == e.width && h == e.height {
		return nil
	}
	e.width, e.height = w, h

	switch e.active {
	case ModeHardware:
		if err := e.hw.r.Resize(w, h); err != nil {
			e.failHardware(err)
		}
	case ModeSoftware:
		e.soft.Resize(w, h)
	}
	e.log.Debugf("engine %s resized to %dx%d", e.shortID(), w, h)
	return nil
}

// BackingSize converts a CSS size and device pixel ratio into pixels.
func BackingSize(cssWidth, cssHeight, dpr float64) (int, int) {
	if !(dpr > 0) {
		dpr = 1
	}
	dpr = math.Min(dpr, MaxDevicePixelRatio)
	w := int(math.Round(math.Max(cssWidth, 1) * dpr))
	h := int(math.Round(math.Max(cssHeight, 1) * dpr))
	return max(w, 1), max(h, 1)
}

// Stop cancels the probe and releases whatever renderer is active. Further
// calls return ErrStopped.
func (e *Engine) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	e.sel.Stop()
	e.deactivate()
	e.log.Infof("engine %s stopped after %d frames", e.shortID(), e.stats.Frames)
}

func (e *Engine) Mode() RendererMode { return e.sel.Mode() }

// FallbackReason is a short human-readable explanation when software is
// drawing, otherwise empty.
func (e *Engine) FallbackReason() string { return string(e.sel.Reason()) }

// Image returns the last software frame, or nil when hardware is drawing.
func (e *Engine) Image() image.Image {
	if e.active != ModeSoftware {
		return nil
	}
	return e.soft.Image()
}

func (e *Engine) Stats() Stats {
	s := e.stats
	s.ID = e.ID()
	s.Mode = e.sel.Mode()
	s.Reason = e.sel.Reason()
	s.Arrangement = e.params.Arrangement
	s.Width, s.Height = e.width, e.height
	switch e.active {
	case ModeHardware:
		s.Population = e.hw.count
		s.Elapsed = e.hw.clock.Elapsed
	case ModeSoftware:
		s.Population = e.soft.Len()
		s.Elapsed = e.soft.Time()
	}
	return s
}

func (e *Engine) reconcile() {
	if e.stopped {
		return
	}
	want := e.sel.Resolve(e.params.Arrangement)
	if want == e.active {
		return
	}
	e.deactivate()
	e.activate(want)
}

func (e *Engine) activate(mode RendererMode) {
	switch mode {
	case ModeHardware:
		if err := e.activateHardware(); err != nil {
			e.failHardware(err)
		}
	case ModeSoftware:
		if err := e.guard.claim(ModeSoftware); err != nil {
			e.log.Errorf("engine %s: %v", e.shortID(), err)
			return
		}
		e.soft.Reset(e.params, e.width, e.height)
		e.active = ModeSoftware
	}
}

func (e *Engine) activateHardware() error {
	if e.factory == nil {
		return ErrNoHardware
	}
	if err := e.guard.claim(ModeHardware); err != nil {
		return err
	}
	r, err := e.factory(e.width, e.height, "ambient-"+e.shortID(), e.log)
	if err != nil {
		e.guard.release(ModeHardware)
		return err
	}
	e.hw = &hardwareState{r: r, clock: core.NewStepClock()}
	e.active = ModeHardware
	return e.syncHardware()
}

func (e *Engine) deactivate() {
	switch e.active {
	case ModeHardware:
		if e.hw != nil {
			e.hw.r.Release()
			e.hw = nil
		}
		e.guard.release(ModeHardware)
		e.log.Debugf("engine %s released hardware resources", e.shortID())
	case ModeSoftware:
		e.soft.Discard()
		e.guard.release(ModeSoftware)
		e.log.Debugf("engine %s discarded software population", e.shortID())
	}
	e.active = ModeUnresolved
}

// failHardware demotes to software and brings the software engine up on its
// own canvas.
func (e *Engine) failHardware(err error) {
	e.stats.Demotions++
	e.sel.Demote(err)
	e.deactivate()
	e.activate(ModeSoftware)
}

// syncHardware rebuilds geometry on a shape change and instances on a count
// or arrangement change.
func (e *Engine) syncHardware() error {
	hw, p := e.hw, e.params
	if !hw.geometry || hw.shape != p.Shape {
		hw.geometry = false
		if err := hw.r.SetShape(p.Shape); err != nil {
			return err
		}
		hw.shape, hw.geometry = p.Shape, true
		e.stats.GeometryBuilds++
	}
	if !hw.instances || hw.count != p.InstanceCount || hw.arrangement != p.Arrangement {
		hw.instances = false
		if err := hw.r.SetInstances(p.InstanceCount, p.Arrangement); err != nil {
			return err
		}
		hw.count, hw.arrangement, hw.instances = p.InstanceCount, p.Arrangement, true
		e.stats.InstanceBuilds++
	}
	return nil
}

func (e *Engine) hardwareFrame() error {
	if err := e.syncHardware(); err != nil {
		return err
	}
	e.hw.clock.Advance(1)
	return e.hw.r.RenderFrame(e.hw.clock.Elapsed, e.params)
}

func (e *Engine) shortID() string { return e.id.String()[:8] }
