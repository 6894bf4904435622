package arrange

import (
	"math"
)

const (
	Gravity = 9.81
	// swingCycle is the time in seconds after which the wave realigns.
	swingCycle = 60.0
	// baseSwings is the number of swings the longest pendulum makes per cycle.
	baseSwings = 51
)

type pendulum struct {
	Length float64
	Theta0 float64
	Angle  float64
}

// pendulums is a pendulum wave. Angles come from the closed-form solution of
// simple harmonic motion at the current time, never from integration.
type pendulums struct {
	bobs []pendulum
}

func newPendulums(st *State, n int) Population {
	p := &pendulums{bobs: make([]pendulum, n)}
	for i := range p.bobs {
		// lengths grow along the row, so swing counts fall
		w := 2 * math.Pi * float64(baseSwings+n-1-i) / swingCycle
		p.bobs[i] = pendulum{Length: Gravity / (w * w), Theta0: 0.45}
	}
	p.Step(st)
	return p
}

func (p *pendulums) Len() int { return len(p.bobs) }

// swing is θ(t) = θ₀·cos(√(g/L)·t).
func swing(b pendulum, t float64) float64 {
	return b.Theta0 * math.Cos(math.Sqrt(Gravity/b.Length)*t)
}

func (p *pendulums) Step(st *State) {
	for i := range p.bobs {
		p.bobs[i].Angle = swing(p.bobs[i], st.Time)
	}
}

func (p *pendulums) Draw(st *State, s Surface) {
	n := len(p.bobs)
	u := unitPx(st)
	maxL := p.bobs[n-1].Length
	top := st.Proj.CY - 0.85*u
	s.StrokeLine(st.Proj.CX-1.05*u, top, st.Proj.CX+1.05*u, top, 3, st.Params.ColorSecondary.Alpha(0.8))
	r := math.Min(0.9*u/float64(n), 0.05*u)
	for i, b := range p.bobs {
		px := st.Proj.CX + (float64(i)/float64(max(n-1, 1))*2-1)*0.95*u
		l := (0.6 + 0.9*b.Length/maxL) * u
		bx := px + l*math.Sin(b.Angle)
		by := top + l*math.Cos(b.Angle)
		if !st.View.Visible(bx, by, r) {
			continue
		}
		mix := float64(i) / float64(max(n-1, 1))
		s.StrokeLine(px, top, bx, by, 1, palette(st, mix).Alpha(0.45))
		body(st, s, bx, by, r, b.Angle, palette(st, mix), 1)
	}
}
