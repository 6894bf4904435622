package ambient

import (
	"fmt"
	"os"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Config is the on-disk form of a run: the parameter record plus host
// settings. Colours are "#rrggbb" strings.
type Config struct {
	Arrangement      string  `yaml:"arrangement"`
	Shape            string  `yaml:"shape"`
	InstanceCount    int     `yaml:"instance_count"`
	CameraSpeed      float64 `yaml:"camera_speed"`
	Metallic         float64 `yaml:"metallic"`
	ColorPrimary     string  `yaml:"color_primary"`
	ColorSecondary   string  `yaml:"color_secondary"`
	BackgroundColor  string  `yaml:"background_color"`
	PanelSize        float64 `yaml:"panel_size,omitempty"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
	ForceSoftware    bool    `yaml:"force_software"`
	Debug            bool    `yaml:"debug"`
	Seed             int64   `yaml:"seed,omitempty"`
}

func DefaultConfig() *Config {
	return ConfigFromParams(DefaultParams())
}

// ConfigFromParams renders p in config form with default host settings.
func ConfigFromParams(p Params) *Config {
	return &Config{
		Arrangement:      p.Arrangement.String(),
		Shape:            p.Shape.String(),
		InstanceCount:    p.InstanceCount,
		CameraSpeed:      p.CameraSpeed,
		Metallic:         p.Metallic,
		ColorPrimary:     p.ColorPrimary.Hex(),
		ColorSecondary:   p.ColorSecondary.Hex(),
		BackgroundColor:  p.BackgroundColor.Hex(),
		PanelSize:        p.PanelSize,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		DevicePixelRatio: 1,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params parses the config into a normalised parameter record.
func (c *Config) Params() (Params, error) {
	p := DefaultParams()
	var err error
	if c.Arrangement != "" {
		if p.Arrangement, err = core.ParseArrangement(c.Arrangement); err != nil {
			return Params{}, err
		}
	}
	if c.Shape != "" {
		if p.Shape, err = core.ParseShape(c.Shape); err != nil {
			return Params{}, err
		}
	}
	colors := []struct {
		field string
		src   string
		dst   *core.RGB
	}{
		{"color_primary", c.ColorPrimary, &p.ColorPrimary},
		{"color_secondary", c.ColorSecondary, &p.ColorSecondary},
		{"background_color", c.BackgroundColor, &p.BackgroundColor},
	}
	for _, col := range colors {
		if col.src == "" {
			continue
		}
		rgb, err := core.ParseHex(col.src)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, col.field, err)
		}
		*col.dst = rgb
	}
	if c.InstanceCount != 0 {
		p.InstanceCount = c.InstanceCount
	}
	if c.CameraSpeed != 0 {
		p.CameraSpeed = c.CameraSpeed
	}
	p.Metallic = c.Metallic
	if c.PanelSize != 0 {
		p.PanelSize = c.PanelSize
	}
	return p.Normalize(), nil
}

// Size returns the configured layout box, filling in defaults.
func (c *Config) Size() (width, height int, dpr float64) {
	width, height, dpr = c.Width, c.Height, c.DevicePixelRatio
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if !(dpr > 0) {
		dpr = 1
	}
	return width, height, dpr
}
