package arrange

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type boid struct {
	Pos   mgl64.Vec2
	Vel   mgl64.Vec2
	Depth float64
}

// flockRules tunes one flocking arrangement.
//
// Sample selects the neighbor search: 0 scans the whole flock every step
// (exact, quadratic), otherwise each boid looks at Sample random flockmates.
// fishSchool keeps the exact scan because its cap is small; murmuration
// samples so that several hundred birds stay cheap, accepting noisier flocking.
type flockRules struct {
	Neighbor   float64
	Separation float64
	Cohesion   float64
	Alignment  float64
	Separate   float64
	MinSpeed   float64
	MaxSpeed   float64
	Sample     int
	Predator   bool
	FleeRadius float64
	Flee       float64
}

var fishRules = flockRules{
	Neighbor:   0.3,
	Separation: 0.08,
	Cohesion:   0.6,
	Alignment:  1.2,
	Separate:   3.0,
	MinSpeed:   0.12,
	MaxSpeed:   0.45,
}

var birdRules = flockRules{
	Neighbor:   0.25,
	Separation: 0.05,
	Cohesion:   0.9,
	Alignment:  1.6,
	Separate:   4.0,
	MinSpeed:   0.2,
	MaxSpeed:   0.7,
	Sample:     12,
	Predator:   true,
	FleeRadius: 0.35,
	Flee:       6.0,
}

const (
	flockBoundX = 1.3
	flockBoundY = 0.9
)

type flock struct {
	boids    []boid
	next     []mgl64.Vec2
	rules    flockRules
	predator mgl64.Vec2
	sprites  []sprite
}

func newFlock(st *State, n int, rules flockRules) *flock {
	f := &flock{
		boids:   make([]boid, n),
		next:    make([]mgl64.Vec2, n),
		rules:   rules,
		sprites: make([]sprite, 0, n+1),
	}
	for i := range f.boids {
		a := 2 * math.Pi * st.Rand.Float64()
		sp := rules.MinSpeed + (rules.MaxSpeed-rules.MinSpeed)*st.Rand.Float64()
		f.boids[i] = boid{
			Pos:   mgl64.Vec2{(st.Rand.Float64()*2 - 1) * flockBoundX * 0.8, (st.Rand.Float64()*2 - 1) * flockBoundY * 0.8},
			Vel:   mgl64.Vec2{math.Cos(a) * sp, math.Sin(a) * sp},
			Depth: st.Rand.Float64()*0.8 - 0.4,
		}
	}
	return f
}

func newFishSchool(st *State, n int) Population  { return newFlock(st, n, fishRules) }
func newMurmuration(st *State, n int) Population { return newFlock(st, n, birdRules) }

func (f *flock) Len() int { return len(f.boids) }

func (f *flock) predatorAt(t float64) mgl64.Vec2 {
	return mgl64.Vec2{0.9 * math.Sin(0.7*t), 0.6 * math.Sin(1.1*t+0.4)}
}

func (f *flock) Step(st *State) {
	r := f.rules
	if r.Predator {
		f.predator = f.predatorAt(st.Time)
	}
	for i := range f.boids {
		self := f.boids[i]
		var center, heading, push mgl64.Vec2
		seen := 0
		visit := func(j int) {
			if j == i {
				return
			}
			o := f.boids[j]
			d := o.Pos.Sub(self.Pos)
			l := d.Len()
			if l >= r.Neighbor {
				return
			}
			center = center.Add(o.Pos)
			heading = heading.Add(o.Vel)
			seen++
			if l < r.Separation && l > 0 {
				push = push.Sub(d.Mul((r.Separation - l) / (l * r.Separation)))
			}
		}
		if r.Sample == 0 {
			for j := range f.boids {
				visit(j)
			}
		} else {
			for range r.Sample {
				visit(st.Rand.Intn(len(f.boids)))
			}
		}

		steer := push.Mul(r.Separate)
		if seen > 0 {
			inv := 1 / float64(seen)
			steer = steer.Add(center.Mul(inv).Sub(self.Pos).Mul(r.Cohesion))
			steer = steer.Add(heading.Mul(inv).Sub(self.Vel).Mul(r.Alignment))
		}
		if r.Predator {
			d := self.Pos.Sub(f.predator)
			if l := d.Len(); l < r.FleeRadius && l > 0 {
				steer = steer.Add(d.Mul(r.Flee * (r.FleeRadius - l) / (l * r.FleeRadius)))
			}
		}
		steer = steer.Add(boundsForce(self.Pos))

		f.next[i] = clampSpeed(self.Vel.Add(steer.Mul(st.Dt)), r.MinSpeed, r.MaxSpeed, st)
	}
	for i := range f.boids {
		b := &f.boids[i]
		b.Vel = f.next[i]
		b.Pos = b.Pos.Add(b.Vel.Mul(st.Dt))
		b.Pos[0] = clampAbs(b.Pos[0], flockBoundX*1.2)
		b.Pos[1] = clampAbs(b.Pos[1], flockBoundY*1.2)
	}
}

// boundsForce turns boids back once they leave the soft bounds.
func boundsForce(p mgl64.Vec2) mgl64.Vec2 {
	var f mgl64.Vec2
	if ex := math.Abs(p[0]) - flockBoundX; ex > 0 {
		f[0] = -math.Copysign(ex*8, p[0])
	}
	if ey := math.Abs(p[1]) - flockBoundY; ey > 0 {
		f[1] = -math.Copysign(ey*8, p[1])
	}
	return f
}

// clampSpeed keeps |v| within [lo, hi].
func clampSpeed(v mgl64.Vec2, lo, hi float64, st *State) mgl64.Vec2 {
	l := v.Len()
	switch {
	case math.IsNaN(l) || math.IsInf(l, 0):
		a := 2 * math.Pi * st.Rand.Float64()
		return mgl64.Vec2{math.Cos(a) * lo, math.Sin(a) * lo}
	case l > hi:
		v = v.Mul(hi / l)
		if v.Len() > hi {
			v = v.Mul(1 - 1e-12)
		}
		return v
	case l < 1e-9:
		a := 2 * math.Pi * st.Rand.Float64()
		return mgl64.Vec2{math.Cos(a) * lo, math.Sin(a) * lo}
	case l < lo:
		return v.Mul(lo / l)
	}
	return v
}

func clampAbs(v, lim float64) float64 { return math.Max(-lim, math.Min(lim, v)) }

func (f *flock) Draw(st *State, s Surface) {
	f.sprites = f.sprites[:0]
	size := 0.03
	if f.rules.Predator {
		size = 0.014
	}
	for _, b := range f.boids {
		sp, ok := project(st, b.Pos.Vec3(b.Depth), size, (b.Depth+0.4)/0.8, -0.4, 0.4)
		if !ok {
			continue
		}
		sp.Rot = -math.Atan2(b.Vel[1], b.Vel[0])
		f.sprites = append(f.sprites, sp)
	}
	if f.rules.Predator {
		if sp, ok := project(st, f.predator.Vec3(0.45), 0.04, 1, -0.4, 0.45); ok {
			c := st.Params.ColorSecondary.Scale(0.6)
			sp.Color = &c
			f.sprites = append(f.sprites, sp)
		}
	}
	paint(st, s, f.sprites)
}
