package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	explosionPeriod = 4.0
	expandEnd       = 0.45
	pauseEnd        = 0.6
)

type shrapnel struct {
	Dir     mgl64.Vec3
	MaxDist float64
	Dist    float64
}

// explosion drives every fragment from one global expand, pause, contract cycle.
type explosion struct {
	frags   []shrapnel
	cycle   int
	reach   float64
	sprites []sprite
}

func newExplosion(st *State, n int) Population {
	e := &explosion{frags: make([]shrapnel, n), sprites: make([]sprite, 0, n)}
	e.scatter(st)
	return e
}

func (e *explosion) scatter(st *State) {
	for i := range e.frags {
		e.frags[i] = shrapnel{Dir: randomDir(st), MaxDist: 0.3 + 0.7*st.Rand.Float64()}
	}
}

func randomDir(st *State) mgl64.Vec3 {
	z := st.Rand.Float64()*2 - 1
	a := 2 * math.Pi * st.Rand.Float64()
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(a), r * math.Sin(a), z}
}

// reachAt is the normalised distance of every fragment at cycle position u ∈ [0,1).
func reachAt(u float64) float64 {
	switch {
	case u < expandEnd:
		e := 1 - u/expandEnd
		return 1 - e*e*e
	case u < pauseEnd:
		return 1
	default:
		c := (u - pauseEnd) / (1 - pauseEnd)
		return 1 - c*c
	}
}

func (e *explosion) Len() int { return len(e.frags) }

func (e *explosion) Step(st *State) {
	cycle := int(st.Time / explosionPeriod)
	if cycle != e.cycle {
		e.cycle = cycle
		e.scatter(st)
	}
	u := st.Time/explosionPeriod - float64(cycle)
	e.reach = reachAt(u)
	for i := range e.frags {
		e.frags[i].Dist = e.reach * e.frags[i].MaxDist
	}
}

var (
	heatWhite  = core.RGB{R: 1, G: 0.97, B: 0.9}
	heatOrange = core.RGB{R: 1, G: 0.55, B: 0.1}
	heatRed    = core.RGB{R: 0.8, G: 0.1, B: 0.05}
)

// heat maps normalised distance onto a white, orange, red ramp.
func heat(d float64) core.RGB {
	switch {
	case d < 1.0/3:
		return heatWhite.Lerp(heatOrange, d*3)
	case d < 2.0/3:
		return heatOrange.Lerp(heatRed, d*3-1)
	}
	return heatRed
}

func (e *explosion) Draw(st *State, s Surface) {
	s.Glow(st.Proj.CX, st.Proj.CY, (1-e.reach)*0.3*unitPx(st)+2, heatWhite.Alpha(0.9))
	e.sprites = e.sprites[:0]
	for _, f := range e.frags {
		sp, ok := project(st, f.Dir.Mul(f.Dist), 0.02, 0, -1, 1)
		if !ok {
			continue
		}
		c := heat(f.Dist).Lerp(st.Params.ColorPrimary, 0.15)
		sp.Color = &c
		e.sprites = append(e.sprites, sp)
	}
	paint(st, s, e.sprites)
}
