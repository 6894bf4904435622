package arrange

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type orbiter struct {
	Orbit int
	Angle float64
}

// orbits moves bodies around several tilted circular planes.
type orbits struct {
	bodies  []orbiter
	radius  []float64
	tilt    []float64
	sprites []sprite
}

func newOrbits(st *State, n int) Population {
	count := max(3, min(8, n/40))
	o := &orbits{
		bodies:  make([]orbiter, n),
		radius:  make([]float64, count),
		tilt:    make([]float64, count),
		sprites: make([]sprite, 0, n),
	}
	for k := range count {
		o.radius[k] = 0.3 + 0.7*float64(k+1)/float64(count)
		o.tilt[k] = -0.4*math.Pi + 0.8*math.Pi*float64(k)/float64(count)
	}
	per := (n + count - 1) / count
	for i := range o.bodies {
		k := i % count
		o.bodies[i] = orbiter{Orbit: k, Angle: 2 * math.Pi * float64(i/count) / float64(per)}
	}
	return o
}

func (o *orbits) Len() int { return len(o.bodies) }

func (o *orbits) Step(st *State) {
	for i := range o.bodies {
		b := &o.bodies[i]
		w := 0.8 / math.Sqrt(o.radius[b.Orbit])
		b.Angle = math.Mod(b.Angle+w*st.Dt, 2*math.Pi)
	}
}

// pos returns the body in view space; z is the out-of-plane coordinate.
func (o *orbits) pos(b orbiter) mgl64.Vec3 {
	return mgl64.Rotate3DX(o.tilt[b.Orbit]).Mul3x1(ring(o.radius[b.Orbit], b.Angle, 0))
}

func (o *orbits) Draw(st *State, s Surface) {
	s.Glow(st.Proj.CX, st.Proj.CY, 0.25*unitPx(st), st.Params.ColorSecondary.Alpha(0.9))
	o.sprites = o.sprites[:0]
	for _, b := range o.bodies {
		sp, ok := project(st, o.pos(b), 0.03, float64(b.Orbit)/float64(len(o.radius)-1), -1, 1)
		if !ok {
			continue
		}
		o.sprites = append(o.sprites, sp)
	}
	paint(st, s, o.sprites)
}

type swirl struct {
	Radius float64
	Angle  float64
}

const vortexRate = 0.35

// vortex spins motes with angular speed inversely proportional to radius.
type vortex struct {
	motes   []swirl
	sprites []sprite
}

func newVortex(st *State, n int) Population {
	v := &vortex{motes: make([]swirl, n), sprites: make([]sprite, 0, 2*n)}
	for i := range v.motes {
		v.motes[i] = swirl{
			Radius: 0.08 + 0.92*math.Sqrt(st.Rand.Float64()),
			Angle:  2 * math.Pi * st.Rand.Float64(),
		}
	}
	return v
}

func (v *vortex) Len() int { return len(v.motes) }

// omega is the angular speed at radius r.
func omega(r float64) float64 { return vortexRate / (r + 0.05) }

func (v *vortex) Step(st *State) {
	for i := range v.motes {
		m := &v.motes[i]
		m.Angle = math.Mod(m.Angle+omega(m.Radius)*st.Dt, 2*math.Pi)
		m.Radius -= st.Dt * 0.02
		if m.Radius < 0.06 {
			m.Radius = 1
		}
	}
}

func (v *vortex) Draw(st *State, s Surface) {
	v.sprites = v.sprites[:0]
	for _, m := range v.motes {
		z := -0.6 * (1 - m.Radius)
		// ghost trails slightly behind the current angle
		ga := m.Angle - omega(m.Radius)*0.08
		if g, ok := project(st, ring(m.Radius, ga, z), 0.022, m.Radius, -0.6, 0); ok {
			g.Alpha *= 0.3
			g.Depth -= 1e-3
			v.sprites = append(v.sprites, g)
		}
		if sp, ok := project(st, ring(m.Radius, m.Angle, z), 0.025, m.Radius, -0.6, 0); ok {
			sp.Rot = m.Angle
			v.sprites = append(v.sprites, sp)
		}
	}
	paint(st, s, v.sprites)
}
