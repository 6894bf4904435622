package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

type waveTerm struct {
	A, KX, KZ, W, Phase float64
}

// waveField is a sum of travelling sines sampled by the wave-surface arrangements.
type waveField []waveTerm

var ocean = waveField{
	{A: 0.09, KX: 2.1, KZ: 0.4, W: 1.3},
	{A: 0.05, KX: 4.3, KZ: -1.1, W: 2.1, Phase: 1.2},
	{A: 0.025, KX: 7.9, KZ: 2.3, W: 3.4, Phase: 2.7},
}

var breeze = waveField{
	{A: 0.6, KX: 1.7, KZ: 0.8, W: 1.1},
	{A: 0.3, KX: 3.9, KZ: -1.7, W: 2.3, Phase: 0.7},
	{A: 0.1, KX: 9.1, KZ: 3.1, W: 5.3, Phase: 2.1},
}

func (f waveField) At(x, z, t float64) float64 {
	var h float64
	for _, w := range f {
		h += w.A * math.Sin(w.KX*x+w.KZ*z+w.W*t+w.Phase)
	}
	return h
}

// SlopeX is ∂h/∂x.
func (f waveField) SlopeX(x, z, t float64) float64 {
	var s float64
	for _, w := range f {
		s += w.A * w.KX * math.Cos(w.KX*x+w.KZ*z+w.W*t+w.Phase)
	}
	return s
}

func (f waveField) Amplitude() float64 {
	var a float64
	for _, w := range f {
		a += math.Abs(w.A)
	}
	return a
}

// seaPoint places a point on the sea surface in view space.
func seaPoint(x, z, h float64) (float64, float64, float64) {
	return x, -0.35 + h + z*0.35, -z * 0.9
}

func drawSea(st *State, s Surface) {
	const lines, segs = 9, 40
	for l := range lines {
		z := axisAt(l, lines)
		d := core.DepthFactor(-z*0.9, -0.9, 0.9)
		c := st.Params.ColorPrimary.Lerp(st.Params.BackgroundColor, 0.5).Alpha(0.15 + 0.35*d)
		var px, py float64
		for k := 0; k <= segs; k++ {
			x := axisAt(k, segs+1) * 1.6
			vx, vy, vz := seaPoint(x, z, ocean.At(x, z, st.Time))
			sx, sy, _, ok := st.Proj.Project(vx, vy, vz)
			if !ok {
				continue
			}
			if k > 0 {
				s.StrokeLine(px, py, sx, sy, 1, c)
			}
			px, py = sx, sy
		}
	}
}

type sailboat struct {
	X, Z  float64
	Speed float64
	Y     float64
	Heel  float64
}

// sailboats ride the sea surface, heaving with its height and heeling with its slope.
type sailboats struct {
	boats []sailboat
	order []int
}

func newSailboats(st *State, n int) Population {
	b := &sailboats{boats: make([]sailboat, n), order: make([]int, n)}
	for i := range b.boats {
		b.boats[i] = sailboat{
			X:     (st.Rand.Float64()*2 - 1) * 1.3,
			Z:     axisAt(i, n)*0.85 + (st.Rand.Float64()-0.5)*0.05,
			Speed: 0.04 + 0.08*st.Rand.Float64(),
		}
		b.order[i] = i
	}
	core.SortBackToFront(b.order, func(i *int) float64 { return -b.boats[*i].Z })
	return b
}

func (b *sailboats) Len() int { return len(b.boats) }

func (b *sailboats) Step(st *State) {
	for i := range b.boats {
		p := &b.boats[i]
		p.X += p.Speed * st.Dt
		if p.X > 1.4 {
			p.X = -1.4
		}
		p.Y = ocean.At(p.X, p.Z, st.Time)
		p.Heel = math.Atan(ocean.SlopeX(p.X, p.Z, st.Time))
	}
}

func (b *sailboats) Draw(st *State, s Surface) {
	drawSea(st, s)
	u := unitPx(st)
	for _, i := range b.order {
		p := b.boats[i]
		vx, vy, vz := seaPoint(p.X, p.Z, p.Y)
		x, y, scale, ok := st.Proj.Project(vx, vy, vz)
		size := 0.06 * u * scale
		if !ok || !st.View.Visible(x, y, size*2) {
			continue
		}
		a := core.DepthAlpha(core.DepthFactor(vz, -0.9, 0.9))
		s.FillPolygon(quad(x, y, size*1.6, size*0.35, -p.Heel), st.Params.ColorSecondary.Scale(0.7).Alpha(a))
		mx, my := x+math.Sin(-p.Heel)*size*0.1, y
		tx, ty := mx-math.Sin(p.Heel)*size*1.6, my-math.Cos(p.Heel)*size*1.6
		s.FillPolygon([]Point{{mx, my}, {tx, ty}, {mx + math.Cos(p.Heel)*size*0.9, my - math.Sin(p.Heel)*size*0.9}},
			palette(st, float64(i%3)/2).Lerp(core.RGB{R: 1, G: 1, B: 1}, 0.5).Alpha(a))
	}
}

type tree struct {
	GX, GZ float64
	Height float64
	Sway   float64
}

// forest sways trees with the local strength of a breeze field.
type forest struct {
	trees []tree
	order []int
}

func newForest(st *State, n int) Population {
	f := &forest{trees: make([]tree, n), order: make([]int, n)}
	items := rows(n, 1.8)
	for i := range f.trees {
		f.trees[i] = tree{
			GX:     items[i].GX + (st.Rand.Float64()-0.5)*0.08,
			GZ:     items[i].GZ + (st.Rand.Float64()-0.5)*0.08,
			Height: 0.7 + 0.6*st.Rand.Float64(),
		}
		f.order[i] = i
	}
	core.SortBackToFront(f.order, func(i *int) float64 { return -f.trees[*i].GZ })
	return f
}

func (f *forest) Len() int { return len(f.trees) }

func (f *forest) Step(st *State) {
	amp := breeze.Amplitude()
	for i := range f.trees {
		t := &f.trees[i]
		t.Sway = 0.3 * breeze.At(t.GX, t.GZ, st.Time) / amp
	}
}

func (f *forest) Draw(st *State, s Surface) {
	u := unitPx(st)
	for _, i := range f.order {
		t := f.trees[i]
		bx, by, scale, ok := ground(st, t.GX, t.GZ, 0)
		h := 0.14 * t.Height * u * scale
		if !ok || !st.View.Visible(bx, by-h, h) {
			continue
		}
		a := core.DepthAlpha(core.DepthFactor(-t.GZ, -1, 1))
		tx, ty := bx+math.Sin(t.Sway)*h, by-math.Cos(t.Sway)*h
		s.StrokeLine(bx, by, tx, ty, math.Max(1, 0.1*h), core.RGB{R: 0.35, G: 0.22, B: 0.12}.Alpha(a))
		body(st, s, tx, ty, 0.4*h, t.Sway, palette(st, 0.5+t.Sway), a)
	}
}

const flagSegments = 8

type flag struct {
	GX, GZ float64
	Mix    float64
}

// flags ripple cloth along the breeze field; each segment samples it further downwind.
type flags struct {
	poles []flag
	order []int
}

func newFlags(st *State, n int) Population {
	f := &flags{poles: make([]flag, n), order: make([]int, n)}
	for i, it := range rows(n, 2.2) {
		f.poles[i] = flag{GX: it.GX, GZ: it.GZ, Mix: st.Rand.Float64()}
		f.order[i] = i
	}
	core.SortBackToFront(f.order, func(i *int) float64 { return -f.poles[*i].GZ })
	return f
}

func (f *flags) Len() int { return len(f.poles) }

func (f *flags) Step(st *State) {}

// ripple is the vertical offset of segment k of a flag at time t.
func (p flag) ripple(k int, t float64) float64 {
	along := float64(k) / flagSegments
	return breeze.At(p.GX+along*0.3, p.GZ, t) * along * 0.35
}

func (f *flags) Draw(st *State, s Surface) {
	u := unitPx(st)
	top := make([]Point, flagSegments+1)
	for _, i := range f.order {
		p := f.poles[i]
		bx, by, scale, ok := ground(st, p.GX, p.GZ, 0)
		h := 0.2 * u * scale
		if !ok || !st.View.Visible(bx, by-h, h) {
			continue
		}
		a := core.DepthAlpha(core.DepthFactor(-p.GZ, -1, 1))
		s.StrokeLine(bx, by, bx, by-h, math.Max(1, 0.02*h), core.RGB{R: 0.7, G: 0.7, B: 0.75}.Alpha(a))
		w, fh := 0.5*h, 0.3*h
		for k := range top {
			top[k] = Point{bx + w*float64(k)/flagSegments, by - h + p.ripple(k, st.Time)*fh*2}
		}
		for k := 0; k < flagSegments; k++ {
			q := []Point{top[k], top[k+1], {top[k+1].X, top[k+1].Y + fh}, {top[k].X, top[k].Y + fh}}
			shade := 0.8 + 0.2*math.Cos(float64(k)+st.Time*3)
			s.FillPolygon(q, palette(st, p.Mix).Scale(shade).Alpha(a))
		}
	}
}
