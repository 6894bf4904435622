package core

// BaseStep is the simulated time advanced per frame at speed 1.
const BaseStep = 1.0 / 60

// StepClock is a fixed-step simulation clock. Every Advance moves time by
// Base × speed regardless of wall time.
type StepClock struct {
	Base    float64
	Elapsed float64
	Frames  uint64
}

func NewStepClock() StepClock { return StepClock{Base: BaseStep} }

// Advance returns the step taken.
func (c *StepClock) Advance(speed float64) float64 {
	if c.Base <= 0 {
		c.Base = BaseStep
	}
	if !(speed > 0) {
		speed = 1
	}
	dt := c.Base * speed
	c.Elapsed += dt
	c.Frames++
	return dt
}

func (c *StepClock) Reset() {
	c.Elapsed = 0
	c.Frames = 0
}
