package arrange

import (
	"math"
)

type dominoState uint8

const (
	standing dominoState = iota
	falling
	fallen
)

const (
	fallenTilt    = 1.35
	triggerRate   = 18.0 // dominoes per second
	resetMargin   = 30
	fallAccel     = 14.0
	dominoSpacing = 0.055
)

type domino struct {
	X, Y    float64
	Heading float64
	Tilt    float64
	Speed   float64
	State   dominoState
}

// dominoes sweeps a trigger index along a spiral; each domino it passes tips
// over with accelerating speed. The sweep restarts once the trigger is
// resetMargin past the last domino.
type dominoes struct {
	pieces  []domino
	trigger float64
}

func newDominoes(st *State, n int) Population {
	d := &dominoes{pieces: make([]domino, n)}
	// archimedean spiral r = a + bθ, stepped by arc length
	const a, b = 0.12, 0.045
	theta := 0.0
	for i := range d.pieces {
		r := a + b*theta
		x, y := r*math.Cos(theta), r*math.Sin(theta)
		d.pieces[i] = domino{X: x, Y: y, Heading: theta + math.Pi/2}
		theta += dominoSpacing / math.Max(r, 0.05)
	}
	return d
}

func (d *dominoes) Len() int { return len(d.pieces) }

func (d *dominoes) reset() {
	d.trigger = 0
	for i := range d.pieces {
		p := &d.pieces[i]
		p.Tilt, p.Speed, p.State = 0, 0, standing
	}
}

func (d *dominoes) Step(st *State) {
	d.trigger += triggerRate * st.Dt
	if d.trigger > float64(len(d.pieces)+resetMargin) {
		d.reset()
		return
	}
	reached := min(int(d.trigger), len(d.pieces))
	for i := range d.pieces {
		p := &d.pieces[i]
		switch p.State {
		case standing:
			if i < reached {
				p.State = falling
			}
		case falling:
			p.Speed += fallAccel * st.Dt
			p.Tilt += p.Speed * st.Dt
			if p.Tilt >= fallenTilt {
				p.Tilt = fallenTilt
				p.State = fallen
			}
		}
	}
}

func (d *dominoes) Draw(st *State, s Surface) {
	u := unitPx(st)
	w, h := 0.012*u, 0.05*u
	for i, p := range d.pieces {
		sx, sy, scale, ok := st.Proj.Project(p.X, p.Y*0.8, p.Y*0.4)
		if !ok || !st.View.Visible(sx, sy, h*scale) {
			continue
		}
		// a tipping domino lengthens along its heading as it leans over
		lean := math.Sin(p.Tilt)
		length := (w + (h-w)*lean) * scale
		cx := sx + math.Cos(p.Heading)*length*0.5
		cy := sy - math.Sin(p.Heading)*length*0.5
		mix := float64(i) / float64(len(d.pieces))
		if p.State == fallen {
			mix = 1
		}
		alpha := 1 - 0.3*lean
		s.FillPolygon(quad(cx, cy, math.Max(length, w*scale), h*scale*(1-0.6*lean)+w*scale, -p.Heading), palette(st, mix).Alpha(alpha))
	}
}
