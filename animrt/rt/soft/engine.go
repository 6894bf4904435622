// Package soft runs arrangements on the CPU and rasterises them with gg.
package soft

import (
	"image"

	"github.com/gekko3d/ambient/animrt/rt/arrange"
	"github.com/gekko3d/ambient/animrt/rt/core"
)

// Engine owns the live population of one arrangement and the canvas it draws into.
// Nothing outside the engine touches the population.
type Engine struct {
	log    core.Logger
	seed   int64
	canvas *Canvas
	st     *arrange.State
	pop    arrange.Population
	clock  core.StepClock
	errs   int
}

func NewEngine(log core.Logger, seed int64) *Engine {
	return &Engine{log: core.OrNop(log), seed: seed, clock: core.NewStepClock()}
}

// Reset discards any live population and builds a fresh one for p on a w×h canvas.
func (e *Engine) Reset(p core.Params, w, h int) {
	w, h = max(w, 1), max(h, 1)
	if e.canvas == nil {
		e.canvas = NewCanvas(w, h)
	} else if err := e.canvas.Resize(w, h); err != nil {
		e.log.Warnf("soft: canvas resize %dx%d: %v", w, h, err)
		e.canvas = NewCanvas(w, h)
	}
	e.seed++
	e.st = arrange.NewState(p, float64(w), float64(h), e.seed)
	e.clock.Reset()
	e.pop = arrange.Init(e.st, e.st.Params.InstanceCount)
	e.log.Debugf("soft: %s initialised with %d particles at %dx%d", e.st.Params.Arrangement, e.pop.Len(), w, h)
}

// Update applies new params. Arrangement or count changes rebuild the population;
// anything else takes effect on the next frame.
func (e *Engine) Update(p core.Params) {
	if e.st == nil {
		return
	}
	p = p.Normalize()
	if e.st.Params.Structural(p) {
		w, h := e.canvas.Size()
		e.Reset(p, int(w), int(h))
		return
	}
	e.st.Params = p
}

// Resize reinitialises the population for the new canvas size.
func (e *Engine) Resize(w, h int) {
	if e.st == nil {
		return
	}
	e.Reset(e.st.Params, w, h)
}

// Frame advances the fixed-step clock once, steps the population and redraws.
func (e *Engine) Frame() {
	if e.pop == nil {
		return
	}
	e.st.Advance(e.clock.Advance(e.st.Params.CameraSpeed))
	e.pop.Step(e.st)
	e.canvas.Clear(e.st.Params.BackgroundColor)
	e.pop.Draw(e.st, e.canvas)

	if n, err := e.canvas.Errors(); n != e.errs {
		e.errs = n
		e.log.Debugf("soft: %d draw errors, last: %v", n, err)
	}
}

// Discard drops the population and the canvas.
func (e *Engine) Discard() {
	if e.canvas != nil {
		if err := e.canvas.Close(); err != nil {
			e.log.Debugf("soft: canvas close: %v", err)
		}
	}
	e.canvas, e.st, e.pop = nil, nil, nil
	e.errs = 0
}

func (e *Engine) Active() bool { return e.pop != nil }

func (e *Engine) Len() int {
	if e.pop == nil {
		return 0
	}
	return e.pop.Len()
}

// Params returns the normalised params the population was built from.
func (e *Engine) Params() core.Params {
	if e.st == nil {
		return core.Params{}
	}
	return e.st.Params
}

func (e *Engine) Time() float64 { return e.clock.Elapsed }

// Image is the most recently drawn frame, or nil when discarded.
func (e *Engine) Image() image.Image {
	if e.canvas == nil {
		return nil
	}
	return e.canvas.Image()
}
