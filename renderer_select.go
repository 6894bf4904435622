package ambient

import (
	"context"
	"fmt"
	"sync"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

// RendererMode identifies the backend that currently draws.
type RendererMode int32

const (
	ModeUnresolved RendererMode = iota
	ModeHardware
	ModeSoftware
)

func (m RendererMode) String() string {
	switch m {
	case ModeHardware:
		return "hardware"
	case ModeSoftware:
		return "software"
	default:
		return "unresolved"
	}
}

// FallbackReason explains why the software renderer is active.
type FallbackReason string

const (
	ReasonNone                   FallbackReason = ""
	ReasonHardwareUnavailable    FallbackReason = "hardware rendering unavailable"
	ReasonHardwareFailed         FallbackReason = "hardware renderer failed to initialise"
	ReasonArrangementUnsupported FallbackReason = "arrangement not supported by the hardware renderer"
)

// ProbeFunc reports whether a hardware backend can be used.
type ProbeFunc func(ctx context.Context) bool

// Decide maps a probe result and an arrangement to a mode.
func Decide(hardwareSupported bool, a core.Arrangement) (RendererMode, FallbackReason) {
	switch {
	case !hardwareSupported:
		return ModeSoftware, ReasonHardwareUnavailable
	case !a.HardwareCapable():
		return ModeSoftware, ReasonArrangementUnsupported
	default:
		return ModeHardware, ReasonNone
	}
}

// Selector owns the RendererMode. The probe runs once off the caller's
// goroutine; every other method is called from the frame loop.
type Selector struct {
	log   Logger
	probe ProbeFunc

	once   sync.Once
	ready  chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	probed    bool
	supported bool
	demoted   error
	stopped   bool
	epoch     uint64

	mode   RendererMode
	reason FallbackReason
}

func NewSelector(probe ProbeFunc, log Logger) *Selector {
	return &Selector{
		log:   orNop(log),
		probe: probe,
		ready: make(chan struct{}),
	}
}

// ProbeAsync starts the capability probe. Only the first call has an effect.
func (s *Selector) ProbeAsync(ctx context.Context) {
	s.once.Do(func() {
		s.mu.Lock()
		epoch := s.epoch
		ctx, s.cancel = context.WithCancel(ctx)
		s.mu.Unlock()

		go func() {
			ok := s.runProbe(ctx)
			s.apply(epoch, ok)
		}()
	})
}

func (s *Selector) runProbe(ctx context.Context) (ok bool) {
	if s.probe == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Warnf("renderer probe panicked: %v", r)
			ok = false
		}
	}()
	return s.probe(ctx)
}

func (s *Selector) apply(epoch uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.ready)

	if s.stopped || epoch != s.epoch {
		s.log.Debugf("renderer probe result %v dropped: selector moved on", ok)
		return
	}
	s.probed = true
	s.supported = ok
	s.log.Infof("renderer probe: hardware supported=%v", ok)
}

// Ready is closed once the probe has finished, whether or not its result
// was applied.
func (s *Selector) Ready() <-chan struct{} { return s.ready }

// Resolve re-evaluates the mode for arrangement a. It returns ModeUnresolved
// until the probe has completed.
func (s *Selector) Resolve(a core.Arrangement) RendererMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || !s.probed {
		return s.mode
	}
	mode, reason := Decide(s.supported, a)
	if mode == ModeHardware && s.demoted != nil {
		mode, reason = ModeSoftware, ReasonHardwareFailed
	}
	if mode != s.mode || reason != s.reason {
		if reason == ReasonArrangementUnsupported {
			s.log.Debugf("renderer: %s routed to software", a)
		} else {
			s.log.Infof("renderer mode %s -> %s (%s)", s.mode, mode, reasonOr(reason, "hardware"))
		}
	}
	s.mode, s.reason = mode, reason
	return mode
}

// Demote records a hardware initialisation failure. Hardware is never tried
// again by this selector.
func (s *Selector) Demote(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cause == nil {
		cause = fmt.Errorf("unspecified hardware failure")
	}
	if s.demoted == nil {
		s.log.Errorf("hardware renderer failed, falling back to software: %v", cause)
	}
	s.demoted = cause
	s.mode = ModeSoftware
	s.reason = ReasonHardwareFailed
}

// Stop cancels a pending probe and freezes the mode. A probe that completes
// afterwards is discarded.
func (s *Selector) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.epoch++
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Selector) Mode() RendererMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Reason is empty unless the mode is software.
func (s *Selector) Reason() FallbackReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeSoftware {
		return ReasonNone
	}
	return s.reason
}

// Cause is the error passed to Demote, if any.
func (s *Selector) Cause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demoted
}

func reasonOr(r FallbackReason, fallback string) string {
	if r == ReasonNone {
		return fallback
	}
	return string(r)
}
