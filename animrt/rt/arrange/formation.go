package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gekko3d/ambient/animrt/rt/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// formation draws the closed-form layouts shared with the instanced pipeline.
type formation struct {
	kind    core.Arrangement
	base    []geom.Placement
	tilt    float64
	spin    float64
	sprites []sprite
}

var formationTilt = map[core.Arrangement]float64{
	core.Radial: 0,
	core.Spiral: 0.35,
	core.Grid:   0.55,
	core.Wave:   0.95,
}

func newFormation(a core.Arrangement) InitFunc {
	return func(st *State, n int) Population {
		return &formation{
			kind:    a,
			base:    geom.Layouts(a, n),
			tilt:    formationTilt[a],
			sprites: make([]sprite, 0, n),
		}
	}
}

func (f *formation) Len() int { return len(f.base) }

func (f *formation) Step(st *State) {
	f.spin = math.Mod(f.spin+st.Dt*0.4, 2*math.Pi)
}

func (f *formation) Draw(st *State, s Surface) {
	f.sprites = f.sprites[:0]
	m := mgl64.Rotate3DZ(f.spin).Mul3(mgl64.Rotate3DX(f.tilt))
	for _, p := range f.base {
		v := mgl64.Vec3{float64(p.Pos[0]), float64(p.Pos[1]), float64(p.Pos[2])}
		if f.kind == core.Wave {
			v[1] = geom.CarpetHeight(v.X(), v.Z(), st.Time*2)
		}
		sp, ok := project(st, m.Mul3x1(v), 0.5*float64(p.Scale), float64(p.Mix), -1.2, 1.2)
		if !ok {
			continue
		}
		sp.Rot = f.spin
		f.sprites = append(f.sprites, sp)
	}
	paint(st, s, f.sprites)
}

const cannonSpokes = 16

type cannonShot struct {
	spoke int
	ring  int
	baseR float64
}

// cannon is a spoked radial layout with a per-spoke pulse and a central glow.
type cannon struct {
	shots   []cannonShot
	spin    float64
	sprites []sprite
}

func newCannon(st *State, n int) Population {
	per := (n + cannonSpokes - 1) / cannonSpokes
	c := &cannon{shots: make([]cannonShot, n), sprites: make([]sprite, 0, n)}
	for i := range c.shots {
		k := i / cannonSpokes
		c.shots[i] = cannonShot{
			spoke: i % cannonSpokes,
			ring:  k,
			baseR: 0.15 + 0.85*float64(k+1)/float64(per),
		}
	}
	return c
}

func (c *cannon) Len() int { return len(c.shots) }

func (c *cannon) Step(st *State) {
	c.spin = math.Mod(c.spin+st.Dt*0.3, 2*math.Pi)
}

// pulse is the radial offset of a spoke at time t.
func (c *cannon) pulse(spoke int, t float64) float64 {
	return 0.12 * math.Sin(t*4+float64(spoke)*math.Pi/4)
}

func (c *cannon) Draw(st *State, s Surface) {
	t := st.Time
	glow := 0.35 * (1 + 0.15*math.Sin(t*4))
	s.Glow(st.Proj.CX, st.Proj.CY, glow*unitPx(st), st.Params.ColorPrimary.Alpha(0.8))

	c.sprites = c.sprites[:0]
	for _, sh := range c.shots {
		r := sh.baseR * (1 + c.pulse(sh.spoke, t))
		a := 2*math.Pi*float64(sh.spoke)/cannonSpokes + c.spin
		z := 0.3 * math.Sin(float64(sh.ring)*0.4+t)
		sp, ok := project(st, ring(r, a, z), 0.035, sh.baseR, -0.4, 0.4)
		if !ok {
			continue
		}
		sp.Rot = a
		c.sprites = append(c.sprites, sp)
	}
	paint(st, s, c.sprites)
}
