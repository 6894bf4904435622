package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

const (
	tunnelSpan  = 8.0
	tunnelSpeed = 0.25
)

type tunnelMote struct {
	Angle float64 // fixed polar ray
	Ray   float64 // distance from the axis
	Z     float64 // (0, 1], 1 is the far end
}

// tunnel recycles motes flying toward the camera along fixed rays.
type tunnel struct {
	motes   []tunnelMote
	twist   float64
	sprites []sprite
}

func newTunnel(st *State, n int) Population {
	t := &tunnel{motes: make([]tunnelMote, n), sprites: make([]sprite, 0, n)}
	for i := range t.motes {
		t.motes[i] = tunnelMote{
			Angle: 2 * math.Pi * float64(i) / float64(n),
			Ray:   tunnelRay(st),
			Z:     (float64(i) + 0.5) / float64(n),
		}
	}
	st.Rand.Shuffle(len(t.motes), func(i, j int) {
		t.motes[i].Z, t.motes[j].Z = t.motes[j].Z, t.motes[i].Z
	})
	return t
}

func tunnelRay(st *State) float64 { return 0.6 + 0.5*st.Rand.Float64() }

func (t *tunnel) Len() int { return len(t.motes) }

func (t *tunnel) Step(st *State) {
	t.twist = math.Mod(t.twist+st.Dt*0.2, 2*math.Pi)
	for i := range t.motes {
		m := &t.motes[i]
		m.Z -= st.Dt * tunnelSpeed
		if m.Z <= 0 {
			m.Z = 1
			m.Ray = tunnelRay(st)
		}
	}
}

func (t *tunnel) Draw(st *State, s Surface) {
	t.sprites = t.sprites[:0]
	for _, m := range t.motes {
		a := m.Angle + t.twist
		z := core.DefaultFocal*0.8 - m.Z*tunnelSpan
		sp, ok := project(st, ring(m.Ray, a, z), 0.05, 1-m.Z, core.DefaultFocal*0.8-tunnelSpan, core.DefaultFocal*0.8)
		if !ok {
			continue
		}
		sp.Rot = a
		t.sprites = append(t.sprites, sp)
	}
	paint(st, s, t.sprites)
}
