package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/go-gl/mathgl/mgl64"
)

// sprite is one projected body ready to be painted.
type sprite struct {
	X, Y  float64
	R     float64
	Rot   float64
	Mix   float64
	Depth float64 // view-space z, larger is nearer
	Alpha float64
	Color *core.RGB // overrides the palette mix when set
}

// project converts a view-space point into a sprite with the standard depth cue.
func project(st *State, p mgl64.Vec3, size, mix float64, far, near float64) (sprite, bool) {
	sx, sy, scale, ok := st.Proj.Project(p.X(), p.Y(), p.Z())
	if !ok {
		return sprite{}, false
	}
	z := p.Z()
	d := core.DepthFactor(z, far, near)
	return sprite{
		X:     sx,
		Y:     sy,
		R:     size * scale * st.Proj.Unit * (0.6 + 0.4*d),
		Mix:   mix,
		Depth: z,
		Alpha: core.DepthAlpha(d),
	}, true
}

// paint sorts back to front and draws every visible sprite.
func paint(st *State, s Surface, sprites []sprite) {
	core.SortBackToFront(sprites, func(sp *sprite) float64 { return sp.Depth })
	for i := range sprites {
		sp := &sprites[i]
		if !st.View.Visible(sp.X, sp.Y, sp.R) {
			continue
		}
		c := palette(st, sp.Mix)
		if sp.Color != nil {
			c = *sp.Color
		}
		body(st, s, sp.X, sp.Y, sp.R, sp.Rot, c, sp.Alpha)
	}
}

func palette(st *State, mix float64) core.RGB {
	return st.Params.ColorPrimary.Lerp(st.Params.ColorSecondary, core.Clamp(mix, 0, 1))
}

// body draws the configured shape with a metallic highlight.
func body(st *State, s Surface, x, y, r, rot float64, c core.RGB, alpha float64) {
	if r <= 0.2 {
		return
	}
	m := st.Params.Metallic
	shaded := c.Scale(0.75 + 0.25*(1-m))
	switch st.Params.Shape {
	case core.Sphere:
		s.FillCircle(x, y, r, shaded.Alpha(alpha))
	case core.Pyramid:
		s.FillPolygon(regular(x, y, r*1.15, 3, rot-math.Pi/2), shaded.Alpha(alpha))
	default:
		s.FillPolygon(regular(x, y, r*1.2, 4, rot+math.Pi/4), shaded.Alpha(alpha))
	}
	if m > 0.05 && r > 1.5 {
		hl := c.Lerp(core.RGB{R: 1, G: 1, B: 1}, 0.7)
		s.FillCircle(x-r*0.35, y-r*0.35, r*(0.2+0.25*m), hl.Alpha(alpha*m*0.8))
	}
}

// regular returns the vertices of a regular n-gon.
func regular(x, y, r float64, n int, rot float64) []Point {
	pts := make([]Point, n)
	step := mgl64.Rotate2D(2 * math.Pi / float64(n))
	v := mgl64.Rotate2D(rot).Mul2x1(mgl64.Vec2{r, 0})
	for i := range pts {
		pts[i] = Point{x + v.X(), y + v.Y()}
		v = step.Mul2x1(v)
	}
	return pts
}

// quad returns the corners of a w×h rectangle centred on (x, y) and rotated by rot.
func quad(x, y, w, h, rot float64) []Point {
	m := mgl64.Rotate2D(rot)
	hw, hh := w/2, h/2
	corner := func(dx, dy float64) Point {
		v := m.Mul2x1(mgl64.Vec2{dx, dy})
		return Point{x + v.X(), y + v.Y()}
	}
	return []Point{corner(-hw, -hh), corner(hw, -hh), corner(hw, hh), corner(-hw, hh)}
}

// ring returns the point at radius r and angle a in the view plane, at depth z.
func ring(r, a, z float64) mgl64.Vec3 {
	return mgl64.Rotate3DZ(a).Mul3x1(mgl64.Vec3{r, 0, z})
}

// screen maps unit-square coordinates onto the surface.
func screen(st *State, u, v float64) (float64, float64) {
	return u * st.W, v * st.H
}

func unitPx(st *State) float64 { return st.Proj.Unit }
