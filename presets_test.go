package ambient

import (
	"sort"
	"testing"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreNormalised(t *testing.T) {
	for a, byName := range Presets {
		for name, p := range byName {
			assert.Equal(t, a, p.Arrangement, name)
			assert.Equal(t, p, p.Normalize(), "%s/%s", a, name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	p, err := GetPreset(core.Pendulums, "wave")
	require.NoError(t, err)
	assert.Equal(t, 35, p.InstanceCount)

	_, err = GetPreset(core.Pendulums, "nonexistent")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	_, err = GetPreset(core.Flags, "wave")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestListPresets(t *testing.T) {
	names := ListPresets(core.Wave)
	assert.Equal(t, []string{"dunes", "ocean"}, names)
	assert.True(t, sort.StringsAreSorted(ListPresets(core.Radial)))
	assert.Nil(t, ListPresets(core.Flags))
}
