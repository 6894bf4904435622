package ambient

import "time"

// FrameTimer measures wall time between host frames. Simulation time comes
// from the fixed-step clock; this only feeds pacing and statistics.
type FrameTimer struct {
	Time  time.Time
	Dt    time.Duration
	Count uint64
}

func NewFrameTimer(now time.Time) *FrameTimer {
	return &FrameTimer{Time: now}
}

func (t *FrameTimer) Tick(now time.Time) time.Duration {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Count++
	return t.Dt
}

// FPS is the rate implied by the last interval.
func (t *FrameTimer) FPS() float64 {
	if t.Dt <= 0 {
		return 0
	}
	return float64(time.Second) / float64(t.Dt)
}
