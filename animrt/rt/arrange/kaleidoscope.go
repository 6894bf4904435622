package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

const wedges = 8

type shard struct {
	R0    float64
	A0    float64 // angle inside the first wedge
	Size  float64
	Phase float64
}

// kaleidoscope mirrors one wedge of shards into eight.
type kaleidoscope struct {
	shards []shard
	spin   float64
}

func newKaleidoscope(st *State, n int) Population {
	per := max(1, n/wedges)
	k := &kaleidoscope{shards: make([]shard, per)}
	for i := range k.shards {
		k.shards[i] = shard{
			R0:    0.1 + 0.85*st.Rand.Float64(),
			A0:    math.Pi / wedges * st.Rand.Float64(),
			Size:  0.015 + 0.03*st.Rand.Float64(),
			Phase: 2 * math.Pi * st.Rand.Float64(),
		}
	}
	return k
}

func (k *kaleidoscope) Len() int { return len(k.shards) * wedges }

func (k *kaleidoscope) Step(st *State) {
	k.spin = math.Mod(k.spin+st.Dt*0.25, 2*math.Pi)
}

// breathe is the radial scale of a shard at time t.
func breathe(sh shard, t float64) float64 {
	return 1 + 0.15*math.Sin(t*1.5+sh.Phase)
}

func (k *kaleidoscope) Draw(st *State, s Surface) {
	u := unitPx(st)
	for _, sh := range k.shards {
		r := sh.R0 * breathe(sh, st.Time)
		for w := range wedges {
			a := sh.A0
			if w%2 == 1 {
				a = -a
			}
			a += float64(w)*2*math.Pi/wedges + k.spin
			x := st.Proj.CX + r*math.Cos(a)*u
			y := st.Proj.CY + r*math.Sin(a)*u
			size := sh.Size * u
			if !st.View.Visible(x, y, size) {
				continue
			}
			c := core.HSL(a/(2*math.Pi)+st.Time*0.05, 0.7, 0.55).Lerp(st.Params.ColorPrimary, 0.25)
			body(st, s, x, y, size, a, c, 0.85)
		}
	}
}
