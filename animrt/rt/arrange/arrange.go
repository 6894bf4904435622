// Package arrange holds the software animation behaviors. Each arrangement
// owns its population; the engine threads a State through Step and Draw.
package arrange

import (
	"math/rand"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

type Point struct{ X, Y float64 }

// Surface is the 2-D drawing target populations render into.
type Surface interface {
	Size() (w, h float64)
	Clear(c core.RGB)
	FillCircle(x, y, r float64, c core.RGBA)
	FillRect(x, y, w, h float64, c core.RGBA)
	FillPolygon(pts []Point, c core.RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c core.RGBA)
	// Glow fills a disc fading from c at the centre to transparent at r.
	Glow(x, y, r float64, c core.RGBA)
}

// State is the per-frame context shared by every population.
type State struct {
	Params core.Params
	W, H   float64
	Time   float64
	Dt     float64
	Rand   *rand.Rand
	Proj   core.Projector
	View   core.Viewport
}

// NewState builds a state for a w×h surface. The params are normalised.
func NewState(p core.Params, w, h float64, seed int64) *State {
	st := &State{
		Params: p.Normalize(),
		Rand:   rand.New(rand.NewSource(seed)),
	}
	st.Resize(w, h)
	return st
}

func (st *State) Resize(w, h float64) {
	st.W, st.H = w, h
	st.Proj = core.NewProjector(w, h)
	st.View = core.Viewport{W: w, H: h, Margin: 0.05 * max(w, h)}
}

// Advance moves simulation time by dt.
func (st *State) Advance(dt float64) {
	st.Dt = dt
	st.Time += dt
}

// Population is one arrangement's live particle set.
type Population interface {
	Len() int
	Step(st *State)
	Draw(st *State, s Surface)
}

type InitFunc func(st *State, n int) Population

var table = map[core.Arrangement]InitFunc{
	core.Radial:        newFormation(core.Radial),
	core.Spiral:        newFormation(core.Spiral),
	core.Grid:          newFormation(core.Grid),
	core.Wave:          newFormation(core.Wave),
	core.Cannon:        newCannon,
	core.Tunnel:        newTunnel,
	core.Helix:         newHelix,
	core.Matrix:        newMatrix,
	core.Orbits:        newOrbits,
	core.Vortex:        newVortex,
	core.Constellation: newConstellation,
	core.Kaleidoscope:  newKaleidoscope,
	core.Stream:        newStream,
	core.Explosion:     newExplosion,
	core.FishSchool:    newFishSchool,
	core.Murmuration:   newMurmuration,
	core.Pendulums:     newPendulums,
	core.Dominoes:      newDominoes,
	core.Compass:       newCompass,
	core.Sunflowers:    newSunflowers,
	core.SolarPanels:   newSolarPanels,
	core.Windmills:     newWindmills,
	core.Surfers:       newSurfers,
	core.Sailboats:     newSailboats,
	core.Forest:        newForest,
	core.Flags:         newFlags,
}

// Lookup returns the initializer registered for a.
func Lookup(a core.Arrangement) (InitFunc, bool) {
	f, ok := table[a]
	return f, ok
}

// minPopulation lists arrangements that cannot form with a single body.
var minPopulation = map[core.Arrangement]int{
	core.Helix:        2,      // one strand pair
	core.Kaleidoscope: wedges, // one shard mirrored into every wedge
}

// MinPopulation returns the smallest population a builds.
func MinPopulation(a core.Arrangement) int {
	if m, ok := minPopulation[a]; ok {
		return m
	}
	return 1
}

// Init builds the population for st.Params.Arrangement, clamping n to the
// arrangement cap and raising it to MinPopulation. The result never holds
// more than max(n, MinPopulation) bodies. Unregistered arrangements fall
// back to radial.
func Init(st *State, n int) Population {
	a := st.Params.Arrangement
	f, ok := table[a]
	if !ok {
		a = core.Radial
		f = table[a]
	}
	return f(st, max(a.Clamp(n), MinPopulation(a)))
}
