package arrange

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rungEdge is the |sin| above which paired strand points are joined.
const rungEdge = 0.85

type helixNode struct {
	Strand int
	Index  int
	Y      float64
}

// helix winds two antiphase strands about the vertical axis.
type helix struct {
	nodes   []helixNode
	pairs   int
	phase   float64
	sprites []sprite
}

func newHelix(st *State, n int) Population {
	pairs := max(1, n/2)
	h := &helix{nodes: make([]helixNode, 0, pairs*2), pairs: pairs, sprites: make([]sprite, 0, n)}
	for k := 0; k < pairs; k++ {
		y := -1.0
		if pairs > 1 {
			y = -1 + 2*float64(k)/float64(pairs-1)
		}
		h.nodes = append(h.nodes, helixNode{0, k, y}, helixNode{1, k, y})
	}
	return h
}

func (h *helix) Len() int { return len(h.nodes) }

func (h *helix) Step(st *State) {
	h.phase = math.Mod(h.phase+st.Dt*0.9, 2*math.Pi)
}

func (h *helix) angle(n helixNode) float64 {
	return float64(n.Index)*0.32 + h.phase + float64(n.Strand)*math.Pi
}

// pos places the node; x = R·sin(angle) so the silhouette edge is |sin| → 1.
func (h *helix) pos(n helixNode) mgl64.Vec3 {
	return mgl64.Rotate3DY(h.angle(n)).Mul3x1(mgl64.Vec3{0, n.Y * 0.95, 0.45})
}

// rung reports whether pair k is drawn with a connecting rung.
func (h *helix) rung(k int) bool {
	return math.Abs(math.Sin(h.angle(helixNode{Index: k}))) > rungEdge
}

func (h *helix) Draw(st *State, s Surface) {
	for k := 0; k < h.pairs; k++ {
		if !h.rung(k) {
			continue
		}
		a, b := h.pos(h.nodes[2*k]), h.pos(h.nodes[2*k+1])
		x0, y0, _, ok0 := st.Proj.Project(a.X(), a.Y(), a.Z())
		x1, y1, _, ok1 := st.Proj.Project(b.X(), b.Y(), b.Z())
		if ok0 && ok1 {
			c := palette(st, 0.5).Alpha(0.35)
			s.StrokeLine(x0, y0, x1, y1, 1.5, c)
		}
	}

	h.sprites = h.sprites[:0]
	for _, n := range h.nodes {
		sp, ok := project(st, h.pos(n), 0.04, float64(n.Strand), -0.45, 0.45)
		if !ok {
			continue
		}
		sp.Rot = h.angle(n)
		h.sprites = append(h.sprites, sp)
	}
	paint(st, s, h.sprites)
}
