package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config     string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	Scene      string
	Assets     string
	Watch      bool
	Collision  string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file (yaml or toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging and strict math checks")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.Scene, "scene", "", "Scene file (yaml or toml)")
	fs.StringVar(&f.Assets, "assets", "", "Asset directory searched before the embedded assets")
	fs.BoolVar(&f.Watch, "watch", false, "Reload the scene file when it changes")
	fs.StringVar(&f.Collision, "collision", "", "Collision mode: off, broad or footprint")
}

// Apply copies the set overrides into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Scene != "" {
		cfg.Scene.Path = f.Scene
	}
	if f.Assets != "" {
		cfg.Scene.AssetDir = f.Assets
	}
	if f.Watch {
		cfg.Scene.Watch = true
	}
	if f.Collision != "" {
		cfg.Controls.Collision = f.Collision
	}
}

var cli Flags

// ParseFlags parses os.Args into the process-wide flags. Call this early in main().
func ParseFlags() {
	cli.Register(flag.CommandLine)
	flag.Parse()
}

// Debug reports whether -debug was given.
func Debug() bool {
	return cli.Debug
}
