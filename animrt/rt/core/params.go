package core

// Params is the caller-supplied description of what to animate.
// Components receive it by value and never modify the caller's copy.
type Params struct {
	Arrangement     Arrangement
	Shape           Shape
	InstanceCount   int
	CameraSpeed     float64
	Metallic        float64
	ColorPrimary    RGB
	ColorSecondary  RGB
	BackgroundColor RGB

	// PanelSize scales the panels of the solarPanels arrangement. Zero selects 1.
	PanelSize float64
}

func DefaultParams() Params {
	return Params{
		Arrangement:     Radial,
		Shape:           Cube,
		InstanceCount:   400,
		CameraSpeed:     1,
		Metallic:        0.5,
		ColorPrimary:    RGB{0.25, 0.55, 1.0},
		ColorSecondary:  RGB{1.0, 0.35, 0.65},
		BackgroundColor: RGB{0.03, 0.03, 0.08},
		PanelSize:       1,
	}
}

// Normalize returns a copy with out-of-range values replaced and the
// instance count clamped to the arrangement cap.
func (p Params) Normalize() Params {
	if !p.Arrangement.Valid() {
		p.Arrangement = Radial
	}
	if p.Shape < Cube || p.Shape > Pyramid {
		p.Shape = Cube
	}
	p.InstanceCount = p.Arrangement.Clamp(p.InstanceCount)
	if !(p.CameraSpeed > 0) {
		p.CameraSpeed = 1
	}
	p.Metallic = Clamp(p.Metallic, 0, 1)
	if !(p.PanelSize > 0) {
		p.PanelSize = 1
	}
	p.ColorPrimary = p.ColorPrimary.Clamp()
	p.ColorSecondary = p.ColorSecondary.Clamp()
	p.BackgroundColor = p.BackgroundColor.Clamp()
	return p
}

// Structural reports whether moving from p to q requires the population or
// instance data to be rebuilt.
func (p Params) Structural(q Params) bool {
	return p.Arrangement != q.Arrangement || p.InstanceCount != q.InstanceCount
}
