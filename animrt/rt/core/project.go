package core

import (
	"math"
	"sort"
)

// Projector maps view space onto a 2-D surface. The eye sits at z = Focal
// looking down -z; larger z is nearer the viewer.
type Projector struct {
	Focal  float64
	CX, CY float64
	// Unit is the number of surface pixels per world unit at z = 0.
	Unit float64
}

const DefaultFocal = 3.0

// NewProjector centres the projection on a w×h surface so that the unit
// square fits the shorter side with a small border.
func NewProjector(w, h float64) Projector {
	return Projector{
		Focal: DefaultFocal,
		CX:    w / 2,
		CY:    h / 2,
		Unit:  math.Min(w, h) * 0.45,
	}
}

// Scale is the perspective factor at depth z; zero when z is at or behind the eye.
func (p Projector) Scale(z float64) float64 {
	d := p.Focal - z
	if d <= 1e-6 {
		return 0
	}
	return p.Focal / d
}

// Project returns surface coordinates and the perspective factor.
// ok is false when the point is at or behind the eye.
func (p Projector) Project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	scale = p.Scale(z)
	if scale == 0 {
		return 0, 0, 0, false
	}
	return p.CX + x*scale*p.Unit, p.CY - y*scale*p.Unit, scale, true
}

// DepthFactor normalises z into [0,1] between far and near; 1 is nearest.
// Size and opacity of every drawn object derive from this value.
func DepthFactor(z, far, near float64) float64 {
	if near == far {
		return 1
	}
	return Clamp((z-far)/(near-far), 0, 1)
}

// DepthAlpha is the standard opacity ramp for a depth factor.
func DepthAlpha(d float64) float64 { return 0.25 + 0.75*Clamp(d, 0, 1) }

// SortBackToFront orders items by ascending depth key so that nearer items
// (larger z) are drawn last. Items with equal keys keep their order.
func SortBackToFront[T any](items []T, depth func(*T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return depth(&items[i]) < depth(&items[j])
	})
}

// Viewport is the drawable rectangle plus a margin outside of which objects are culled.
type Viewport struct {
	W, H   float64
	Margin float64
}

// Visible reports whether a disc of radius r at (x, y) touches the padded viewport.
func (v Viewport) Visible(x, y, r float64) bool {
	m := v.Margin + r
	return x >= -m && y >= -m && x <= v.W+m && y <= v.H+m
}

// WrapAngle maps a into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Approach moves cur toward target by the exponential factor 1-exp(-rate·dt).
func Approach(cur, target, rate, dt float64) float64 {
	return cur + (target-cur)*(1-math.Exp(-rate*dt))
}

// ApproachAngle is Approach along the shortest angular path.
func ApproachAngle(cur, target, rate, dt float64) float64 {
	return WrapAngle(cur + WrapAngle(target-cur)*(1-math.Exp(-rate*dt)))
}
