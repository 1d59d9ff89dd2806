package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScene = `
name: grove
ground:
  half_extents: [3, 2, 4]
  floor_level: 0.5
camera:
  eye: [0, 0.5, 2]
  target: [0, 0.5, 0]
objects:
  - name: a
    position: [1, 0.8, 1]
  - name: b
    position: [-1, 0.8, -1]
    scale: [0.5, 0.5, 0.5]
`

const tomlScene = `
name = "boxes"
model = "models/box.obj"
object_color = [1.0, 0.0, 0.0, 1.0]

[ground]
half_extents = [5.0, 1.0, 5.0]
floor_level = 0.5

[camera]
eye = [0.0, 0.5, 2.5]
target = [0.0, 0.5, 0.0]

[[objects]]
name = "box"
position = [0.0, 0.8, -1.0]
scale = [0.5, 0.5, 0.5]
`

func TestDecodeYAML(t *testing.T) {
	s, err := Decode("scene.yaml", []byte(yamlScene))
	require.NoError(t, err)

	assert.Equal(t, "grove", s.Name)
	assert.Equal(t, DefaultModel, s.Model, "model defaults")
	assert.Equal(t, mgl32.Vec3{3, 2, 4}, s.Ground.HalfExtents)
	assert.Equal(t, TileColor, s.Ground.Color)
	assert.Equal(t, TreeColor, s.Objects.Color)
	require.Equal(t, 2, s.Objects.Len())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Objects.At(0).Scale, "scale defaults")
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, s.Objects.At(1).Scale)
	assert.Equal(t, 63, s.Ground.TileCount())
}

func TestDecodeTOML(t *testing.T) {
	s, err := Decode("scene.toml", []byte(tomlScene))
	require.NoError(t, err)

	assert.Equal(t, "boxes", s.Name)
	assert.Equal(t, "models/box.obj", s.Model)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, s.Objects.Color)
	assert.Equal(t, float32(0.5), s.Ground.FloorLevel)
	require.Equal(t, 1, s.Objects.Len())
	assert.Equal(t, "box", s.Objects.At(0).Name)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   string
		config bool
	}{
		{"unknown field", "s.yaml", "ground:\n  half_extents: [1, 1, 1]\n  floor: 0\n", false},
		{"short vector", "s.yaml", "ground:\n  half_extents: [1, 1]\n", false},
		{"bad toml", "s.toml", "name = \n", false},
		{"zero scale", "s.yaml", `
ground: {half_extents: [5, 1, 5], floor_level: 0.5}
camera: {eye: [0, 0.5, 2], target: [0, 0.5, 0]}
objects:
  - {position: [0, 0, 0], scale: [0, 0, 0]}
`, true},
		{"empty", "s.yaml", "name: empty\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, []byte(tt.data))
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.Equal(t, tt.config, errors.As(err, &cfgErr))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		data, err := Encode(Default(), format)
		require.NoError(t, err)

		name := "default.yaml"
		if format == FormatTOML {
			name = "default.toml"
		}
		s, err := Decode(name, data)
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grove.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScene), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "grove", s.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFromPath("a/b/scene.TOML"))
	assert.Equal(t, FormatYAML, FormatFromPath("scene.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("scene"))
}
