package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

const (
	trackRate  = 1.8
	trackDelay = 1.5 // seconds of lag per unit distance from the centre
	golden     = 2.399963229728653
)

type tracker struct {
	GX, GZ float64 // ground position, z grows away from the viewer
	Delay  float64
	Facing float64
	Blades float64
}

// heliotrope turns each object toward a moving source. Objects see the source
// as it was Delay seconds ago and always ease toward it, so a response wave
// spreads outward from the centre.
type heliotrope struct {
	kind    core.Arrangement
	items   []tracker
	order   []int
	target  func(tr *tracker, t float64) float64
	angular bool
}

func newHeliotrope(kind core.Arrangement, items []tracker) *heliotrope {
	h := &heliotrope{kind: kind, items: items, order: make([]int, len(items))}
	for i := range h.items {
		it := &h.items[i]
		it.Delay = trackDelay * math.Hypot(it.GX, it.GZ)
		h.order[i] = i
	}
	// painter's order on the ground plane: far rows first
	core.SortBackToFront(h.order, func(i *int) float64 { return -h.items[*i].GZ })
	return h
}

func (h *heliotrope) Len() int { return len(h.items) }

func (h *heliotrope) Step(st *State) {
	for i := range h.items {
		it := &h.items[i]
		goal := h.target(it, st.Time-it.Delay)
		if h.angular {
			it.Facing = core.ApproachAngle(it.Facing, goal, trackRate, st.Dt)
		} else {
			it.Facing = core.Approach(it.Facing, goal, trackRate, st.Dt)
		}
		if h.kind == core.Windmills {
			align := math.Max(0, math.Cos(it.Facing-windDirection(st.Time-it.Delay)))
			it.Blades = math.Mod(it.Blades+st.Dt*(1+4*align), 2*math.Pi)
		}
	}
}

// ground projects a ground-plane point raised by height.
func ground(st *State, gx, gz, height float64) (x, y, scale float64, ok bool) {
	x, y, scale, ok = st.Proj.Project(gx, -0.55+gz*0.45+height, -gz*0.9)
	return
}

func phyllotaxis(n int) []tracker {
	out := make([]tracker, n)
	for i := range out {
		r := 0.95 * math.Sqrt((float64(i)+0.5)/float64(n))
		a := float64(i) * golden
		out[i] = tracker{GX: r * math.Cos(a) * 1.2, GZ: r * math.Sin(a)}
	}
	return out
}

func rows(n int, aspect float64) []tracker {
	cols := max(1, int(math.Ceil(math.Sqrt(float64(n)*aspect))))
	rowsN := (n + cols - 1) / cols
	out := make([]tracker, n)
	for i := range out {
		out[i] = tracker{GX: axisAt(i%cols, cols) * 1.2, GZ: axisAt(i/cols, rowsN) * 0.9}
	}
	return out
}

// sunAt is the sun position in ground coordinates and its elevation in radians.
func sunAt(t float64) (gx, gz, elevation float64) {
	return 2.2 * math.Sin(t*0.25), 1.6, 0.15 + 1.1*(0.5+0.5*math.Sin(t*0.3))
}

func windDirection(t float64) float64 {
	return 0.9*math.Sin(t*0.2) + 0.35*math.Sin(t*0.53+1)
}

func newSunflowers(st *State, n int) Population {
	h := newHeliotrope(core.Sunflowers, phyllotaxis(n))
	h.angular = true
	h.target = func(tr *tracker, t float64) float64 {
		sx, sz, _ := sunAt(t)
		return math.Atan2(sx-tr.GX, sz-tr.GZ)
	}
	return &sunflowers{h}
}

func newSolarPanels(st *State, n int) Population {
	h := newHeliotrope(core.SolarPanels, rows(n, 1.6))
	h.target = func(tr *tracker, t float64) float64 {
		_, _, elev := sunAt(t)
		return math.Pi/2 - elev
	}
	return &solarPanels{h}
}

func newWindmills(st *State, n int) Population {
	items := rows(n, 2)
	for i := range items {
		items[i].GX += (st.Rand.Float64() - 0.5) * 0.1
		items[i].Blades = 2 * math.Pi * st.Rand.Float64()
	}
	h := newHeliotrope(core.Windmills, items)
	h.angular = true
	h.target = func(tr *tracker, t float64) float64 { return windDirection(t) }
	return &windmills{h}
}

func drawSun(st *State, s Surface) {
	gx, _, elev := sunAt(st.Time)
	x, y, _, ok := st.Proj.Project(gx*0.5, 0.2+elev*0.5, -1.5)
	if ok {
		s.Glow(x, y, 0.3*unitPx(st), core.RGB{R: 1, G: 0.85, B: 0.4}.Alpha(0.85))
	}
}

type sunflowers struct{ *heliotrope }

func (f *sunflowers) Draw(st *State, s Surface) {
	drawSun(st, s)
	u := unitPx(st)
	for _, i := range f.order {
		it := f.items[i]
		bx, by, scale, ok := ground(st, it.GX, it.GZ, 0)
		stem := 0.16 * u * scale
		r := 0.03 * u * scale
		if !ok || !st.View.Visible(bx, by-stem, stem) {
			continue
		}
		hx := bx + math.Sin(it.Facing)*r*0.6
		hy := by - stem
		d := core.DepthFactor(-it.GZ, -1, 1)
		s.StrokeLine(bx, by, hx, hy, math.Max(1, 0.15*r), core.RGB{R: 0.2, G: 0.55, B: 0.2}.Alpha(core.DepthAlpha(d)))
		face := math.Abs(math.Cos(it.Facing))
		s.FillPolygon(regular(hx, hy, r*1.5, 10, it.Facing), st.Params.ColorPrimary.Alpha(core.DepthAlpha(d)))
		body(st, s, hx+math.Sin(it.Facing)*r*0.3, hy, r*(0.5+0.3*face), it.Facing, st.Params.ColorSecondary.Scale(0.6), core.DepthAlpha(d))
	}
}

type solarPanels struct{ *heliotrope }

func (p *solarPanels) Draw(st *State, s Surface) {
	drawSun(st, s)
	u := unitPx(st)
	size := st.Params.PanelSize
	for _, i := range p.order {
		it := p.items[i]
		x, y, scale, ok := ground(st, it.GX, it.GZ, 0.02)
		w := 0.08 * size * u * scale
		if !ok || !st.View.Visible(x, y, w) {
			continue
		}
		h := 0.06 * size * u * scale * math.Max(0.08, math.Cos(it.Facing))
		d := core.DepthFactor(-it.GZ, -1, 1)
		s.StrokeLine(x, y, x, y+0.04*u*scale, 1, core.RGB{R: 0.5, G: 0.5, B: 0.5}.Alpha(core.DepthAlpha(d)))
		glint := math.Sin(it.Facing)
		s.FillPolygon(quad(x, y, w, h, 0), palette(st, glint).Alpha(core.DepthAlpha(d)))
	}
}

type windmills struct{ *heliotrope }

func (m *windmills) Draw(st *State, s Surface) {
	u := unitPx(st)
	for _, i := range m.order {
		it := m.items[i]
		bx, by, scale, ok := ground(st, it.GX, it.GZ, 0)
		tower := 0.22 * u * scale
		if !ok || !st.View.Visible(bx, by-tower, tower) {
			continue
		}
		d := core.DepthFactor(-it.GZ, -1, 1)
		a := core.DepthAlpha(d)
		hx, hy := bx, by-tower
		s.StrokeLine(bx, by, hx, hy, math.Max(1, 0.02*u*scale), st.Params.ColorSecondary.Alpha(a))
		blade := 0.12 * u * scale
		fore := math.Abs(math.Cos(it.Facing))
		for k := range 3 {
			ba := it.Blades + float64(k)*2*math.Pi/3
			ex := hx + math.Cos(ba)*blade*fore
			ey := hy - math.Sin(ba)*blade
			s.StrokeLine(hx, hy, ex, ey, math.Max(1, 0.012*u*scale), st.Params.ColorPrimary.Alpha(a))
		}
		body(st, s, hx, hy, 0.012*u*scale, it.Facing, st.Params.ColorPrimary, a)
	}
}
