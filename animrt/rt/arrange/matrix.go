package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

type rainDrop struct {
	Col        int
	Y          float64 // [0, 1], 0 is the top
	Speed      float64
	Brightness float64
}

// matrix is column rain. Each column has a head sweeping downward; drops fade
// with their distance behind it.
type matrix struct {
	drops    []rainDrop
	cols     int
	colSpeed []float64
	colPhase []float64
}

func newMatrix(st *State, n int) Population {
	cols := max(8, min(64, n/12))
	m := &matrix{
		drops:    make([]rainDrop, n),
		cols:     cols,
		colSpeed: make([]float64, cols),
		colPhase: make([]float64, cols),
	}
	for c := range cols {
		m.colSpeed[c] = 0.15 + 0.25*st.Rand.Float64()
		m.colPhase[c] = st.Rand.Float64()
	}
	perCol := (n + cols - 1) / cols
	for i := range m.drops {
		col := i % cols
		row := i / cols
		m.drops[i] = rainDrop{
			Col:        col,
			Y:          (float64(row) + st.Rand.Float64()*0.5) / float64(perCol),
			Speed:      m.colSpeed[col] * (0.9 + 0.2*st.Rand.Float64()),
			Brightness: 0.5 + 0.5*st.Rand.Float64(),
		}
	}
	return m
}

func (m *matrix) Len() int { return len(m.drops) }

func (m *matrix) Step(st *State) {
	for i := range m.drops {
		d := &m.drops[i]
		d.Y += d.Speed * st.Dt
		if d.Y > 1 {
			d.Y = 0
			d.Brightness = 0.5 + 0.5*st.Rand.Float64()
		}
	}
}

// head is the column head position at time t.
func (m *matrix) head(col int, t float64) float64 {
	h := m.colPhase[col] + t*m.colSpeed[col]*1.5
	return h - math.Floor(h)
}

// trail returns the distance from the column head back to y, wrapping at the bottom.
func trail(head, y float64) float64 {
	return math.Mod(head-y+1, 1)
}

func (m *matrix) Draw(st *State, s Surface) {
	cw := st.W / float64(m.cols)
	size := math.Max(1.5, cw*0.35)
	for _, d := range m.drops {
		fade := 1 - trail(m.head(d.Col, st.Time), d.Y)
		a := d.Brightness * fade * fade
		if a < 0.03 {
			continue
		}
		x, y := (float64(d.Col)+0.5)*cw, d.Y*st.H
		if !st.View.Visible(x, y, size) {
			continue
		}
		c := palette(st, 1-fade)
		if fade > 0.96 {
			c = c.Lerp(core.RGB{R: 1, G: 1, B: 1}, 0.6)
		}
		s.FillRect(x-size/2, y-size, size, size*2, c.Alpha(a))
	}
}
