package ambient

import (
	"sort"

	"github.com/gekko3d/ambient/animrt/rt/core"
)

// Presets holds named parameter sets per arrangement.
var Presets = map[core.Arrangement]map[string]Params{
	core.Radial: {
		"calm":  preset(core.Radial, core.Sphere, 400, 0.5, 0.3, "#3a7bd5", "#00d2ff", "#050816"),
		"dense": preset(core.Radial, core.Cube, 2500, 1, 0.7, "#f7971e", "#ffd200", "#0b0b0b"),
	},
	core.Spiral: {
		"galaxy": preset(core.Spiral, core.Sphere, 1800, 0.8, 0.6, "#8e2de2", "#4a00e0", "#020010"),
	},
	core.Grid: {
		"lattice": preset(core.Grid, core.Cube, 1000, 0.6, 0.9, "#bdc3c7", "#2c3e50", "#0d1117"),
	},
	core.Wave: {
		"ocean": preset(core.Wave, core.Cube, 400, 1, 0.5, "#1cb5e0", "#000851", "#02040a"),
		"dunes": preset(core.Wave, core.Pyramid, 900, 0.7, 0.2, "#f2994a", "#f2c94c", "#1a0f05"),
	},
	core.Tunnel: {
		"warp": preset(core.Tunnel, core.Sphere, 1200, 1.6, 0.4, "#00f260", "#0575e6", "#000000"),
	},
	core.Matrix: {
		"classic": preset(core.Matrix, core.Cube, 900, 1, 0, "#00ff41", "#008f11", "#000000"),
	},
	core.FishSchool: {
		"reef": preset(core.FishSchool, core.Pyramid, 150, 1, 0.6, "#ff9966", "#ff5e62", "#00223e"),
	},
	core.Murmuration: {
		"dusk": preset(core.Murmuration, core.Pyramid, 600, 1, 0.1, "#232526", "#414345", "#f8b195"),
	},
	core.Pendulums: {
		"wave": preset(core.Pendulums, core.Sphere, 35, 1, 0.8, "#c0c0aa", "#1cefff", "#101820"),
	},
	core.Sunflowers: {
		"field": preset(core.Sunflowers, core.Sphere, 300, 1, 0.2, "#f9d423", "#ff4e50", "#87ceeb"),
	},
	core.Surfers: {
		"swell": preset(core.Surfers, core.Cube, 24, 1, 0.3, "#ffffff", "#f7797d", "#2193b0"),
	},
}

func preset(a core.Arrangement, s core.Shape, n int, speed, metallic float64, primary, secondary, background string) Params {
	p := DefaultParams()
	p.Arrangement, p.Shape, p.InstanceCount = a, s, n
	p.CameraSpeed, p.Metallic = speed, metallic
	p.ColorPrimary = mustHex(primary)
	p.ColorSecondary = mustHex(secondary)
	p.BackgroundColor = mustHex(background)
	return p.Normalize()
}

func mustHex(s string) core.RGB {
	c, err := core.ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// GetPreset looks up a preset by arrangement and name.
func GetPreset(a core.Arrangement, name string) (Params, error) {
	byName, ok := Presets[a]
	if !ok {
		return Params{}, ErrUnknownPreset
	}
	p, ok := byName[name]
	if !ok {
		return Params{}, ErrUnknownPreset
	}
	return p, nil
}

// ListPresets returns the preset names for a, sorted.
func ListPresets(a core.Arrangement) []string {
	byName, ok := Presets[a]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
