// Package game runs the walkthrough: window, renderer, input and the frame loop.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/assets"
	"github.com/Faultbox/grove/internal/config"
	"github.com/Faultbox/grove/internal/engine/input"
	"github.com/Faultbox/grove/internal/engine/renderer"
	"github.com/Faultbox/grove/internal/engine/shader"
	"github.com/Faultbox/grove/internal/engine/window"
	"github.com/Faultbox/grove/internal/game/session"
	"github.com/Faultbox/grove/internal/game/world"
	"github.com/Faultbox/grove/internal/logger"
)

// Title is the window title.
const Title = "Grove"

// Game is the main demo instance.
type Game struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	watcher  *world.Watcher
	session  *session.Session

	model string
}

// New loads the scene and its mesh, then opens the window and renderer.
// Asset and scene errors are reported before any window appears.
func New(cfg *config.Config) (*Game, error) {
	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config: cfg,
		assets: assets.NewManager(),
		input:  input.New(),
	}
	if cfg.Scene.AssetDir != "" {
		if err := g.assets.AddDir(cfg.Scene.AssetDir); err != nil {
			return nil, err
		}
	}

	sc, err := session.LoadScene(g.assets, cfg.Scene.Path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	mesh, err := session.LoadMesh(g.assets, sc.Model)
	if err != nil {
		return nil, err
	}
	vert, frag, err := session.LoadShader(g.assets)
	if err != nil {
		return nil, fmt.Errorf("loading shaders: %w", err)
	}

	logger.Info("initializing demo",
		zap.String("scene", sc.Name),
		zap.String("model", sc.Model),
		zap.Stringer("collision", opts.Collision),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.FromGraphics(Title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the GL context
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
	}, shader.Source{Name: "lookat", Vertex: vert, Fragment: frag})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.UploadMesh(mesh)
	g.model = sc.Model

	g.session = session.New(sc, opts)
	g.session.Resize(width, height)

	if cfg.Scene.Watch {
		if cfg.Scene.Path == "" {
			logger.Warn("scene watch needs a scene file; ignoring")
		} else if g.watcher, err = world.Watch(cfg.Scene.Path); err != nil {
			logger.Warn("scene watch disabled", zap.Error(err))
			g.watcher = nil
		}
	}

	logger.Info("demo initialized successfully")
	return g, nil
}

// Run starts the main loop and returns when the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		// 1. Input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventToggleFullscreen:
				g.window.ToggleFullscreen()
			case input.EventWindowResize:
				// event sizes are in window points; the viewport wants pixels
				width, height := g.window.DrawableSize()
				g.renderer.Resize(width, height)
				g.session.Resize(width, height)
			}
		}

		// 2. Scene reloads land between frames
		g.applyReloads()

		// 3. Movement
		g.session.Step(dt, g.input.Movement())

		// 4. Render and present
		g.renderer.Draw(g.session.Frame())
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %s (%d fps)", Title, g.session.Scene.Name, frameCount))
			eye := g.session.Camera.Eye()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float32("eye_x", eye.X()),
				zap.Float32("eye_y", eye.Y()),
				zap.Float32("eye_z", eye.Z()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	sc, err := g.watcher.Latest()
	if err != nil {
		return
	}

	if sc.Model != g.model {
		g.assets.Invalidate(sc.Model)
		mesh, err := session.LoadMesh(g.assets, sc.Model)
		if err != nil {
			logger.Warn("reloaded scene ignored", zap.String("scene", sc.Name), zap.Error(err))
			return
		}
		g.renderer.UploadMesh(mesh)
		g.model = sc.Model
	}
	g.session.ApplyScene(sc)
}

// Close cleans up resources.
func (g *Game) Close() {
	logger.Info("closing demo")

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			logger.Warn("closing scene watcher", zap.Error(err))
		}
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	stats := g.assets.CacheStats()
	logger.Debug("asset cache",
		zap.Int("hits", stats.Hits),
		zap.Int("misses", stats.Misses),
		zap.Int("evictions", stats.Evictions),
		zap.Int64("bytes", stats.Bytes),
	)
	g.assets.Close()
}
