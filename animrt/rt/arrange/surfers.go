package arrange

import (
	"math"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

type surfPhase uint8

const (
	paddling surfPhase = iota
	riding
	returning
)

func (p surfPhase) String() string {
	switch p {
	case riding:
		return "riding"
	case returning:
		return "returning"
	}
	return "paddling"
}

const (
	catchHeight  = 0.06
	dropHeight   = -0.02
	minPaddle    = 1.0
	minRide      = 0.8
	maxRide      = 6.0
	maxReturn    = 10.0
	rideSpeed    = 0.35
	returnSpeed  = 0.18
	surfLimit    = 1.3
	homeTolerant = 0.03
)

type surfer struct {
	Home  float64
	X, Z  float64
	Phase surfPhase
	Since float64
}

// surfers run paddling → riding → returning → paddling, guarded by the local
// wave height and the time spent in each phase.
type surfers struct {
	riders []surfer
	order  []int
}

func newSurfers(st *State, n int) Population {
	s := &surfers{riders: make([]surfer, n), order: make([]int, n)}
	for i := range s.riders {
		home := (st.Rand.Float64()*2 - 1) * 0.9
		s.riders[i] = surfer{Home: home, X: home, Z: axisAt(i, n) * 0.8}
		s.order[i] = i
	}
	core.SortBackToFront(s.order, func(i *int) float64 { return -s.riders[*i].Z })
	return s
}

func (s *surfers) Len() int { return len(s.riders) }

// advance applies one step of the state machine to r.
func advance(r *surfer, h, dt float64) {
	r.Since += dt
	next := r.Phase
	switch r.Phase {
	case paddling:
		r.X += (r.Home - r.X) * math.Min(1, dt)
		if h > catchHeight && r.Since > minPaddle {
			next = riding
		}
	case riding:
		r.X += rideSpeed * dt
		if (h < dropHeight && r.Since > minRide) || r.Since > maxRide || r.X >= surfLimit {
			next = returning
		}
	case returning:
		step := returnSpeed * dt
		d := r.Home - r.X
		if math.Abs(d) <= step {
			r.X = r.Home
		} else {
			r.X += math.Copysign(step, d)
		}
		if math.Abs(r.X-r.Home) < homeTolerant || r.Since > maxReturn {
			next = paddling
		}
	}
	r.X = math.Max(-surfLimit, math.Min(surfLimit, r.X))
	if next != r.Phase {
		r.Phase = next
		r.Since = 0
	}
}

func (s *surfers) Step(st *State) {
	for i := range s.riders {
		r := &s.riders[i]
		advance(r, ocean.At(r.X, r.Z, st.Time), st.Dt)
	}
}

func (s *surfers) Draw(st *State, surf Surface) {
	drawSea(st, surf)
	u := unitPx(st)
	for _, i := range s.order {
		r := s.riders[i]
		h := ocean.At(r.X, r.Z, st.Time)
		vx, vy, vz := seaPoint(r.X, r.Z, h)
		x, y, scale, ok := st.Proj.Project(vx, vy, vz)
		size := 0.035 * u * scale
		if !ok || !st.View.Visible(x, y, size*2) {
			continue
		}
		a := core.DepthAlpha(core.DepthFactor(vz, -0.9, 0.9))
		tilt := math.Atan(ocean.SlopeX(r.X, r.Z, st.Time))
		surf.FillPolygon(quad(x, y, size*2.4, size*0.4, -tilt), st.Params.ColorSecondary.Alpha(a))
		lift := size * 0.4
		if r.Phase == riding {
			lift = size * 1.4
		}
		body(st, surf, x, y-lift, size*0.6, tilt, palette(st, float64(r.Phase)/2), a)
	}
}
