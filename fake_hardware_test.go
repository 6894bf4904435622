package ambient

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

// fakeHardware records the buffer lifecycle the engine drives.
type fakeHardware struct {
	calls []string

	shape       core.Shape
	count       int
	arrangement core.Arrangement
	width       int
	height      int

	geometryLive bool
	instanceLive bool
	released     bool
	frames       int

	failFrame error
}

func (f *fakeHardware) Resize(w, h int) error {
	f.calls = append(f.calls, "resize")
	f.width, f.height = w, h
	return nil
}

func (f *fakeHardware) SetShape(s core.Shape) error {
	if f.geometryLive {
		f.calls = append(f.calls, "drop-geometry")
	}
	f.calls = append(f.calls, "geometry")
	f.shape, f.geometryLive = s, true
	return nil
}

func (f *fakeHardware) SetInstances(n int, a core.Arrangement) error {
	if f.instanceLive {
		f.calls = append(f.calls, "drop-instances")
	}
	f.calls = append(f.calls, "instances")
	f.count, f.arrangement, f.instanceLive = n, a, true
	return nil
}

func (f *fakeHardware) RenderFrame(float64, core.Params) error {
	if f.failFrame != nil {
		return f.failFrame
	}
	f.frames++
	return nil
}

func (f *fakeHardware) Release() {
	f.calls = append(f.calls, "release")
	f.geometryLive, f.instanceLive = false, false
	f.released = true
}

// hardwareRig is a factory that hands out fakeHardware and remembers them.
type hardwareRig struct {
	built   []*fakeHardware
	failErr error
	probes  atomic.Int32
}

var errNoDevice = errors.New("no device")

func (r *hardwareRig) factory(w, h int, label string, log Logger) (HardwareRenderer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	f := &fakeHardware{width: w, height: h}
	r.built = append(r.built, f)
	return f, nil
}

func (r *hardwareRig) last() *fakeHardware {
	if len(r.built) == 0 {
		return nil
	}
	return r.built[len(r.built)-1]
}

func (r *hardwareRig) probe(supported bool) ProbeFunc {
	return func(context.Context) bool {
		r.probes.Add(1)
		return supported
	}
}

func newTestEngine(rig *hardwareRig, supported bool, p Params) *Engine {
	return NewEngineBuilder().
		UseProbe(rig.probe(supported)).
		UseHardware(rig.factory).
		UseSeed(7).
		UseParams(p).
		UseSize(320, 240, 1).
		Build()
}

func params(a core.Arrangement, s core.Shape, n int) Params {
	p := DefaultParams()
	p.Arrangement, p.Shape, p.InstanceCount = a, s, n
	return p
}
