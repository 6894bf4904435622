package arrange

import "github.com/gekko3d/ambient/animrt/rt/core"

type drawOp struct {
	Kind string
	X, Y float64
	R    float64
	C    core.RGBA
}

// recorder is a Surface that remembers every call.
type recorder struct {
	w, h   float64
	ops    []drawOp
	clears int
}

func newRecorder(w, h float64) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear(c core.RGB)         { r.clears++ }

func (r *recorder) FillCircle(x, y, rad float64, c core.RGBA) {
	r.ops = append(r.ops, drawOp{"circle", x, y, rad, c})
}

func (r *recorder) FillRect(x, y, w, h float64, c core.RGBA) {
	r.ops = append(r.ops, drawOp{"rect", x, y, w, c})
}

func (r *recorder) FillPolygon(pts []Point, c core.RGBA) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(pts))
	r.ops = append(r.ops, drawOp{"polygon", cx / n, cy / n, 0, c})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c core.RGBA) {
	r.ops = append(r.ops, drawOp{"line", x0, y0, width, c})
}

func (r *recorder) Glow(x, y, rad float64, c core.RGBA) {
	r.ops = append(r.ops, drawOp{"glow", x, y, rad, c})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
