package ambient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigParams(t *testing.T) {
	p, err := DefaultConfig().Params()
	require.NoError(t, err)
	assert.Equal(t, DefaultParams().Arrangement, p.Arrangement)
	assert.Equal(t, DefaultParams().InstanceCount, p.InstanceCount)
	assert.Equal(t, DefaultParams().ColorPrimary.Hex(), p.ColorPrimary.Hex())
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ambient.yaml")
	cfg := DefaultConfig()
	cfg.Arrangement = "solar-panels"
	cfg.Shape = "pyramid"
	cfg.InstanceCount = 5000
	cfg.ColorPrimary = "#ff8000"
	cfg.PanelSize = 1.5
	cfg.ForceSoftware = true
	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "instance_count: 5000")
	assert.Contains(t, string(data), "force_software: true")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	p, err := loaded.Params()
	require.NoError(t, err)
	assert.Equal(t, core.SolarPanels, p.Arrangement)
	assert.Equal(t, core.Pyramid, p.Shape)
	assert.Equal(t, core.SolarPanels.Cap(), p.InstanceCount)
	assert.Equal(t, "#ff8000", p.ColorPrimary.Hex())
	assert.Equal(t, 1.5, p.PanelSize)
}

func TestConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arrangement: tunnel\nwidth: 640\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tunnel", cfg.Arrangement)
	assert.Equal(t, DefaultHeight, cfg.Height)
	w, h, dpr := cfg.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, DefaultHeight, h)
	assert.Equal(t, 1.0, dpr)
}

func TestConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Arrangement = "teapot"
	_, err := cfg.Params()
	assert.ErrorIs(t, err, core.ErrUnknownArrangement)

	cfg = DefaultConfig()
	cfg.Shape = "torus"
	_, err = cfg.Params()
	assert.ErrorIs(t, err, core.ErrUnknownShape)

	cfg = DefaultConfig()
	cfg.BackgroundColor = "#zzzzzz"
	_, err = cfg.Params()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigSizeDefaults(t *testing.T) {
	w, h, dpr := (&Config{DevicePixelRatio: -1}).Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
	assert.Equal(t, 1.0, dpr)
}
