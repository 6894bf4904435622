package arrange

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// stream control points, unit coordinates centred on the origin
var streamPath = [4]Point{{-1.1, -0.6}, {-0.3, 1.1}, {0.3, -1.1}, {1.1, 0.6}}

type streamer struct {
	T      float64 // [0, 1)
	Offset float64
	Speed  float64
	Phase  float64
}

// stream carries particles along a cubic Bézier with perpendicular turbulence.
type stream struct {
	parts   []streamer
	sprites []sprite
}

func newStream(st *State, n int) Population {
	s := &stream{parts: make([]streamer, n), sprites: make([]sprite, 0, n)}
	for i := range s.parts {
		s.parts[i] = streamer{
			T:      float64(i) / float64(n),
			Offset: streamOffset(st),
			Speed:  0.06 + 0.06*st.Rand.Float64(),
			Phase:  2 * math.Pi * st.Rand.Float64(),
		}
	}
	return s
}

func streamOffset(st *State) float64 { return (st.Rand.Float64()*2 - 1) * 0.12 }

func (s *stream) Len() int { return len(s.parts) }

func (s *stream) Step(st *State) {
	for i := range s.parts {
		p := &s.parts[i]
		p.T += p.Speed * st.Dt
		if p.T >= 1 {
			p.T = 0
			p.Offset = streamOffset(st)
		}
	}
}

func bezier(t float64) (p, tangent Point) {
	u := 1 - t
	c := streamPath
	p = Point{
		u*u*u*c[0].X + 3*u*u*t*c[1].X + 3*u*t*t*c[2].X + t*t*t*c[3].X,
		u*u*u*c[0].Y + 3*u*u*t*c[1].Y + 3*u*t*t*c[2].Y + t*t*t*c[3].Y,
	}
	tangent = Point{
		3*u*u*(c[1].X-c[0].X) + 6*u*t*(c[2].X-c[1].X) + 3*t*t*(c[3].X-c[2].X),
		3*u*u*(c[1].Y-c[0].Y) + 6*u*t*(c[2].Y-c[1].Y) + 3*t*t*(c[3].Y-c[2].Y),
	}
	return p, tangent
}

func (s *stream) Draw(st *State, surf Surface) {
	s.sprites = s.sprites[:0]
	for _, p := range s.parts {
		at, tan := bezier(p.T)
		normal := mgl64.Vec2{-tan.Y, tan.X}
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		}
		off := p.Offset + 0.03*math.Sin(st.Time*4+p.T*20+p.Phase)
		z := 0.4 * math.Sin(p.T*math.Pi*2+p.Phase)
		pos := mgl64.Vec2{at.X, at.Y}.Add(normal.Mul(off))
		sp, ok := project(st, pos.Vec3(z), 0.022, p.T, -0.4, 0.4)
		if !ok {
			continue
		}
		sp.Rot = math.Atan2(tan.Y, tan.X)
		s.sprites = append(s.sprites, sp)
	}
	paint(st, surf, s.sprites)
}
