package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1280, cfg.Graphics.Width)
	assert.Equal(t, 720, cfg.Graphics.Height)
	assert.False(t, cfg.Graphics.Fullscreen)
	assert.True(t, cfg.Graphics.VSync)
	assert.Equal(t, float32(70), cfg.Graphics.FOV)
	assert.Equal(t, float32(0.1), cfg.Graphics.Near)
	assert.Equal(t, float32(5), cfg.Graphics.Far)

	assert.Equal(t, float32(3), cfg.Controls.RunMultiplier)
	assert.Equal(t, "footprint", cfg.Controls.Collision)

	assert.Empty(t, cfg.Scene.Path)
	assert.False(t, cfg.Scene.Watch)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 0
	cfg.Graphics.FOV = 180
	cfg.Graphics.Far = 0.05
	cfg.Controls.RunMultiplier = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.Contains(t, err.Error(), "graphics.far")
	assert.Contains(t, err.Error(), "controls.run_multiplier")
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144
  fov: 60
  far: 20

controls:
  run_multiplier: 2.5
  collision: "off"

scene:
  path: "scenes/orchard.toml"
  asset_dir: "assets"
  watch: true

logging:
  level: "debug"
  log_file: "grove.log"
`)

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, 1920, cfg.Graphics.Width)
	assert.Equal(t, 1080, cfg.Graphics.Height)
	assert.True(t, cfg.Graphics.Fullscreen)
	assert.False(t, cfg.Graphics.VSync)
	assert.Equal(t, 144, cfg.Graphics.FPSLimit)
	assert.Equal(t, float32(60), cfg.Graphics.FOV)
	assert.Equal(t, float32(20), cfg.Graphics.Far)
	// untouched keys keep their defaults
	assert.Equal(t, float32(0.1), cfg.Graphics.Near)

	assert.Equal(t, float32(2.5), cfg.Controls.RunMultiplier)
	assert.Equal(t, "off", cfg.Controls.Collision)
	assert.Equal(t, "scenes/orchard.toml", cfg.Scene.Path)
	assert.Equal(t, "assets", cfg.Scene.AssetDir)
	assert.True(t, cfg.Scene.Watch)
	assert.Equal(t, "grove.log", cfg.Logging.LogFile)
}

func TestLoadFromFileTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[graphics]
width = 800
fov = 90.0

[controls]
collision = "broad"
`)

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))
	assert.Equal(t, 800, cfg.Graphics.Width)
	assert.Equal(t, 720, cfg.Graphics.Height)
	assert.Equal(t, float32(90), cfg.Graphics.FOV)
	assert.Equal(t, "broad", cfg.Controls.Collision)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"bad.yaml":     "graphics:\n  width: not a number\n  invalid syntax here\n",
		"unknown.yaml": "graphics:\n  widht: 800\n",
		"unknown.toml": "[graphics]\nwidht = 800\n",
		"bad.toml":     "[graphics\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, content)
			assert.Error(t, loadFromFile(Default(), path))
		})
	}

	t.Run("missing", func(t *testing.T) {
		assert.Error(t, loadFromFile(Default(), filepath.Join(dir, "none.yaml")))
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, loadFromFile(cfg, writeFile(t, dir, "empty.yaml", "")))
		assert.Equal(t, Default(), cfg)
	})
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	require.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should return absolute path, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	assert.Empty(t, findConfigFile(first, second))

	tomlPath := writeFile(t, second, "config.toml", "")
	assert.Equal(t, tomlPath, findConfigFile(first, second))

	// yaml wins over toml within a directory, earlier directories win overall
	yamlPath := writeFile(t, second, "config.yaml", "")
	assert.Equal(t, yamlPath, findConfigFile(first, second))

	require.NoError(t, os.Mkdir(filepath.Join(first, "config.yaml"), 0o755))
	assert.Equal(t, yamlPath, findConfigFile(first, second), "directories are skipped")

	local := writeFile(t, first, "config.yml", "")
	assert.Equal(t, local, findConfigFile(first, second))
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "windowed",
			args: []string{"-windowed"},
			verify: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Graphics.Fullscreen)
			},
		},
		{
			name: "fullscreen",
			args: []string{"-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Graphics.Fullscreen)
			},
		},
		{
			name: "size",
			args: []string{"-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2560, cfg.Graphics.Width)
				assert.Equal(t, 1440, cfg.Graphics.Height)
			},
		},
		{
			name: "scene",
			args: []string{"-scene", "orchard.yaml", "-assets", "/srv/assets", "-watch"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "orchard.yaml", cfg.Scene.Path)
				assert.Equal(t, "/srv/assets", cfg.Scene.AssetDir)
				assert.True(t, cfg.Scene.Watch)
			},
		},
		{
			name: "collision",
			args: []string{"-collision", "broad"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "broad", cfg.Controls.Collision)
			},
		},
		{
			name: "none",
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flags
			fs := flag.NewFlagSet("grove", flag.ContinueOnError)
			f.Register(fs)
			require.NoError(t, fs.Parse(tt.args))

			cfg := Default()
			f.Apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadWithPriority(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
graphics:
  width: 1600
  height: 900
scene:
  path: "~/scenes/grove.yaml"
`)

	cfg, err := LoadWith(&Flags{Config: path, Width: 1920})
	require.NoError(t, err)

	// flag beats file, file beats default
	assert.Equal(t, 1920, cfg.Graphics.Width)
	assert.Equal(t, 900, cfg.Graphics.Height)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "scenes", "grove.yaml"), cfg.Scene.Path)
}

func TestLoadWithRejectsInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[graphics]\nnear = 10.0\n")

	_, err := LoadWith(&Flags{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphics.far")

	_, err = LoadWith(&Flags{Config: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestSaveTo(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Controls.RunMultiplier = 4
	cfg.Scene.Path = "scenes/clearing.toml"

	for _, name := range []string{"nested/config.yaml", "nested/config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, cfg.SaveTo(path))

			loaded := Default()
			require.NoError(t, loadFromFile(loaded, path))
			assert.Equal(t, cfg, loaded)
		})
	}
}
