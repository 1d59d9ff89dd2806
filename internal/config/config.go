// Package config handles demo configuration loading and management.
//
// Settings come from three layers: Default, an optional YAML or TOML file,
// then command-line flags.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool    `yaml:"vsync" toml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit" toml:"fps_limit"` // 0 means unlimited
	FOV        float32 `yaml:"fov" toml:"fov"`             // vertical, degrees
	Near       float32 `yaml:"near" toml:"near"`
	Far        float32 `yaml:"far" toml:"far"`
}

// ControlsConfig holds movement tuning.
type ControlsConfig struct {
	RunMultiplier float32 `yaml:"run_multiplier" toml:"run_multiplier"`
	Collision     string  `yaml:"collision" toml:"collision"` // off, broad or footprint
}

// SceneConfig selects the scene description and asset locations.
type SceneConfig struct {
	Path     string `yaml:"path" toml:"path"`           // empty uses the embedded default
	AssetDir string `yaml:"asset_dir" toml:"asset_dir"` // searched before the embedded assets
	Watch    bool   `yaml:"watch" toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    70,
			Near:   0.1,
			Far:    5,
		},
		Controls: ControlsConfig{
			RunMultiplier: 3,
			Collision:     "footprint",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every out-of-range setting at once.
// The collision mode is checked by the consumer that parses it.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics: window size %dx%d must be positive", g.Width, g.Height)
	check(g.FPSLimit >= 0, "graphics.fps_limit: %d is negative", g.FPSLimit)
	check(g.FOV > 0 && g.FOV < 180, "graphics.fov: %g must be in (0, 180)", g.FOV)
	check(g.Near > 0, "graphics.near: %g must be positive", g.Near)
	check(g.Far > g.Near, "graphics.far: %g must be beyond near %g", g.Far, g.Near)
	check(c.Controls.RunMultiplier > 0, "controls.run_multiplier: %g must be positive", c.Controls.RunMultiplier)
	return err
}
