// Package session runs the walkthrough simulation: scene, camera, movement
// and per-frame draw lists, without any window or GL state.
package session

import (
	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/config"
	"github.com/Faultbox/grove/internal/engine/camera"
	"github.com/Faultbox/grove/internal/engine/scene"
	"github.com/Faultbox/grove/internal/game/movement"
	"github.com/Faultbox/grove/internal/game/world"
	"github.com/Faultbox/grove/internal/logger"
)

// MaxFrameDelta caps the time step so a stalled frame cannot carry the
// camera across an object in one update.
const MaxFrameDelta float32 = 0.25

// Options tune a session.
type Options struct {
	FOV           float32
	Near          float32
	Far           float32
	RunMultiplier float32
	Collision     world.CollisionMode
}

// DefaultOptions returns the stock projection, run speed and collision mode.
func DefaultOptions() Options {
	return Options{
		FOV:           camera.DefaultFOV,
		Near:          camera.DefaultNear,
		Far:           camera.DefaultFar,
		RunMultiplier: movement.DefaultRunMultiplier,
		Collision:     world.CollisionFootprint,
	}
}

// OptionsFromConfig reads session options from the application config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := world.ParseCollisionMode(cfg.Controls.Collision)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	opts.Collision = mode
	if cfg.Graphics.FOV > 0 {
		opts.FOV = cfg.Graphics.FOV
	}
	if cfg.Graphics.Near > 0 {
		opts.Near = cfg.Graphics.Near
	}
	if cfg.Graphics.Far > opts.Near {
		opts.Far = cfg.Graphics.Far
	}
	if cfg.Controls.RunMultiplier > 0 {
		opts.RunMultiplier = cfg.Controls.RunMultiplier
	}
	return opts, nil
}

// Session is one running walkthrough.
type Session struct {
	Scene      *world.Scene
	Camera     *camera.FirstPerson
	Controller *movement.Controller

	opts    Options
	width   int
	height  int
	builder scene.Builder
}

// New places the camera at the scene's start.
func New(sc *world.Scene, opts Options) *Session {
	cam := camera.NewFirstPerson(sc.Camera.Eye, sc.Camera.Target)
	cam.SetPerspective(opts.FOV, opts.Near, opts.Far)
	cam.ComputeProjectionMatrix(1, 1)

	ctrl := movement.NewController(cam, sc.Ground, world.NewCollider(opts.Collision, sc.Objects))
	ctrl.RunMultiplier = opts.RunMultiplier

	return &Session{
		Scene:      sc,
		Camera:     cam,
		Controller: ctrl,
		opts:       opts,
	}
}

// Options returns the session options.
func (s *Session) Options() Options { return s.opts }

// Step runs one movement update. dt is capped at MaxFrameDelta.
func (s *Session) Step(dt float32, in movement.InputState) movement.StepResult {
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	return s.Controller.Update(dt, in)
}

// Resize recomputes the projection for a new viewport.
func (s *Session) Resize(width, height int) {
	s.width, s.height = width, height
	s.Camera.ComputeProjectionMatrix(width, height)
}

// ApplyScene swaps in a reloaded scene. Movement stops and the camera returns
// to the new scene's start.
func (s *Session) ApplyScene(sc *world.Scene) {
	s.Scene = sc
	s.Camera.Reset(sc.Camera.Eye, sc.Camera.Target)
	s.Controller.Stop()
	s.Controller.SetWorld(sc.Ground, world.NewCollider(s.opts.Collision, sc.Objects))

	logger.Info("scene applied",
		zap.String("name", sc.Name),
		zap.Int("objects", sc.Objects.Len()),
		zap.Int("tiles", sc.Ground.TileCount()))
}

// Frame builds the draw list for the current state.
func (s *Session) Frame() *scene.DrawList {
	return s.builder.Build(s.Camera, s.Scene)
}
