package soft

import (
	"image"

	"github.com/gekko3d/ambient/animrt/rt/arrange"
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gogpu/gg"
)

// Canvas is the software drawing target, rasterised by gg.
type Canvas struct {
	ctx  *gg.Context
	errs int
	last error
}

var _ arrange.Surface = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	return &Canvas{ctx: gg.NewContext(max(w, 1), max(h, 1))}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.ctx.Width()), float64(c.ctx.Height())
}

func (c *Canvas) Resize(w, h int) error {
	return c.ctx.Resize(max(w, 1), max(h, 1))
}

func (c *Canvas) Image() image.Image { return c.ctx.Image() }

func (c *Canvas) Close() error { return c.ctx.Close() }

// Errors returns the number of failed draw calls and the most recent failure.
func (c *Canvas) Errors() (int, error) { return c.errs, c.last }

func (c *Canvas) note(err error) {
	if err != nil {
		c.errs++
		c.last = err
	}
}

func (c *Canvas) Clear(col core.RGB) {
	c.ctx.ClearWithColor(col.GG())
}

func (c *Canvas) setColor(col core.RGBA) {
	c.ctx.SetRGBA(col.R, col.G, col.B, col.A)
}

func (c *Canvas) FillCircle(x, y, r float64, col core.RGBA) {
	c.setColor(col)
	c.ctx.DrawCircle(x, y, r)
	c.note(c.ctx.Fill())
}

func (c *Canvas) FillRect(x, y, w, h float64, col core.RGBA) {
	c.setColor(col)
	c.ctx.DrawRectangle(x, y, w, h)
	c.note(c.ctx.Fill())
}

func (c *Canvas) FillPolygon(pts []arrange.Point, col core.RGBA) {
	if len(pts) < 3 {
		return
	}
	c.setColor(col)
	c.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ctx.LineTo(p.X, p.Y)
	}
	c.ctx.ClosePath()
	c.note(c.ctx.Fill())
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col core.RGBA) {
	c.setColor(col)
	c.ctx.SetLineWidth(width)
	c.ctx.MoveTo(x0, y0)
	c.ctx.LineTo(x1, y1)
	c.note(c.ctx.Stroke())
}

func (c *Canvas) Glow(x, y, r float64, col core.RGBA) {
	if r <= 0 {
		return
	}
	c.ctx.SetFillBrush(gg.NewRadialGradientBrush(x, y, 0, r).
		AddColorStop(0, gg.RGBA2(col.R, col.G, col.B, col.A)).
		AddColorStop(1, gg.RGBA2(col.R, col.G, col.B, 0)))
	c.ctx.DrawCircle(x, y, r)
	c.note(c.ctx.Fill())
}
