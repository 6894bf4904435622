package arrange

import (
	"math"
)

// linkDistance is the unit-square distance under which two stars are joined.
const linkDistance = 0.18

type star struct {
	X, Y   float64
	VX, VY float64
}

// constellation drifts stars across a wrapping unit square and links close
// pairs. The pair scan is quadratic; the arrangement cap keeps it small.
type constellation struct {
	stars []star
}

func newConstellation(st *State, n int) Population {
	c := &constellation{stars: make([]star, n)}
	for i := range c.stars {
		a := 2 * math.Pi * st.Rand.Float64()
		v := 0.01 + 0.03*st.Rand.Float64()
		c.stars[i] = star{
			X:  st.Rand.Float64(),
			Y:  st.Rand.Float64(),
			VX: v * math.Cos(a),
			VY: v * math.Sin(a),
		}
	}
	return c
}

func (c *constellation) Len() int { return len(c.stars) }

func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}

func (c *constellation) Step(st *State) {
	for i := range c.stars {
		s := &c.stars[i]
		s.X = wrapUnit(s.X + s.VX*st.Dt)
		s.Y = wrapUnit(s.Y + s.VY*st.Dt)
	}
}

// linkAlpha falls linearly from 1 at distance 0 to 0 at linkDistance.
func linkAlpha(d float64) float64 {
	if d >= linkDistance {
		return 0
	}
	return 1 - d/linkDistance
}

func (c *constellation) Draw(st *State, s Surface) {
	for i := range c.stars {
		a := c.stars[i]
		for j := i + 1; j < len(c.stars); j++ {
			b := c.stars[j]
			la := linkAlpha(math.Hypot(a.X-b.X, a.Y-b.Y))
			if la == 0 {
				continue
			}
			x0, y0 := screen(st, a.X, a.Y)
			x1, y1 := screen(st, b.X, b.Y)
			s.StrokeLine(x0, y0, x1, y1, 1, palette(st, 0.5).Alpha(la*0.6))
		}
	}
	r := math.Max(1.5, unitPx(st)*0.012)
	for i, a := range c.stars {
		x, y := screen(st, a.X, a.Y)
		if !st.View.Visible(x, y, r) {
			continue
		}
		tw := 0.75 + 0.25*math.Sin(st.Time*2+float64(i))
		body(st, s, x, y, r, 0, palette(st, float64(i%2)), tw)
	}
}
