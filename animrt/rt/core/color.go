package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// RGB holds linear channel values in [0,1].
type RGB struct {
	R, G, B float64
}

type RGBA struct {
	R, G, B, A float64
}

func fromGG(c gg.RGBA) RGB { return RGB{c.R, c.G, c.B} }

// GG returns the colour as an opaque gg colour.
func (c RGB) GG() gg.RGBA { return gg.RGB(c.R, c.G, c.B) }

func (c RGBA) GG() gg.RGBA { return gg.RGBA2(c.R, c.G, c.B, c.A) }

func (c RGB) Alpha(a float64) RGBA { return RGBA{c.R, c.G, c.B, Clamp(a, 0, 1)} }

func (c RGB) Clamp() RGB {
	return RGB{Clamp(c.R, 0, 1), Clamp(c.G, 0, 1), Clamp(c.B, 0, 1)}
}

func (c RGB) Lerp(o RGB, t float64) RGB {
	return fromGG(c.GG().Lerp(o.GG(), t))
}

// Scale multiplies every channel by f and clamps.
func (c RGB) Scale(f float64) RGB {
	return RGB{c.R * f, c.G * f, c.B * f}.Clamp()
}

func (c RGB) Vec4() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

func (c RGB) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(c.R*255)), uint8(math.Round(c.G*255)), uint8(math.Round(c.B*255)))
}

// ParseHex accepts #rrggbb or #rgb, with or without the leading '#'.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 3 && len(h) != 6 {
		return RGB{}, fmt.Errorf("core: bad colour %q", s)
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return RGB{}, fmt.Errorf("core: bad colour %q", s)
		}
	}
	return fromGG(gg.Hex(h)), nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// HSL converts hue (turns, wrapped), saturation and lightness to RGB.
func HSL(h, s, l float64) RGB {
	return fromGG(gg.HSL(h*360, Clamp(s, 0, 1), Clamp(l, 0, 1)))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
