package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

type needle struct {
	X, Y   float64
	Angle  float64
	Spring float64
}

// compass turns a field of needles toward a point moving on a Lissajous path.
type compass struct {
	needles []needle
	target  Point
}

func newCompass(st *State, n int) Population {
	cols := int(math.Ceil(math.Sqrt(float64(n) * 1.5)))
	rows := (n + cols - 1) / cols
	c := &compass{needles: make([]needle, n)}
	for i := range c.needles {
		col, row := i%cols, i/cols
		c.needles[i] = needle{
			X:      axisAt(col, cols) * 1.3,
			Y:      axisAt(row, rows) * 0.9,
			Angle:  core.WrapAngle(2 * math.Pi * st.Rand.Float64()),
			Spring: 1.5 + 3*st.Rand.Float64(),
		}
	}
	return c
}

func axisAt(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i)/float64(n-1)*2 - 1
}

func (c *compass) Len() int { return len(c.needles) }

func lissajous(t float64) Point {
	return Point{1.1 * math.Sin(1.3*t), 0.75 * math.Sin(1.7*t+0.5)}
}

// bearing is the direction from n to the target point.
func (n needle) bearing(p Point) float64 {
	return math.Atan2(p.Y-n.Y, p.X-n.X)
}

func (c *compass) Step(st *State) {
	c.target = lissajous(st.Time * 0.5)
	for i := range c.needles {
		n := &c.needles[i]
		n.Angle = core.ApproachAngle(n.Angle, n.bearing(c.target), n.Spring, st.Dt)
	}
}

func (c *compass) Draw(st *State, s Surface) {
	u := unitPx(st)
	tx, ty, _, _ := st.Proj.Project(c.target.X, c.target.Y, 0)
	s.Glow(tx, ty, 0.12*u, st.Params.ColorSecondary.Alpha(0.8))
	l := 0.05 * u
	for _, n := range c.needles {
		x, y, _, _ := st.Proj.Project(n.X, n.Y, 0)
		if !st.View.Visible(x, y, l) {
			continue
		}
		dx, dy := math.Cos(n.Angle)*l, -math.Sin(n.Angle)*l
		off := math.Abs(core.WrapAngle(n.bearing(c.target) - n.Angle))
		s.StrokeLine(x-dx, y-dy, x, y, 1.5, st.Params.ColorSecondary.Alpha(0.6))
		s.FillPolygon([]Point{
			{x + dx, y + dy},
			{x - dy*0.25, y + dx*0.25},
			{x + dy*0.25, y - dx*0.25},
		}, palette(st, off/math.Pi).Alpha(0.9))
	}
}
