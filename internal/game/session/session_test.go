package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/grove/internal/assets"
	"github.com/Faultbox/grove/internal/config"
	"github.com/Faultbox/grove/internal/engine/model"
	"github.com/Faultbox/grove/internal/engine/scene"
	"github.com/Faultbox/grove/internal/game/movement"
	"github.com/Faultbox/grove/internal/game/world"
)

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	cfg := config.Default()
	cfg.Controls.Collision = "broad"
	cfg.Controls.RunMultiplier = 2
	cfg.Graphics.FOV = 90
	opts, err = OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, world.CollisionBroad, opts.Collision)
	assert.Equal(t, float32(2), opts.RunMultiplier)
	assert.Equal(t, float32(90), opts.FOV)

	cfg.Controls.Collision = "bogus"
	_, err = OptionsFromConfig(cfg)
	var cfgErr *world.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestStepCapsDelta(t *testing.T) {
	s := New(world.Default(), DefaultOptions())
	s.Controller.SetSpeeds(movement.Speeds{Dolly: 1})

	s.Step(10, movement.InputState{})
	assert.InDelta(t, 2.5-MaxFrameDelta, s.Camera.Eye().Z(), 1e-5)

	before := s.Camera.Eye()
	s.Step(-1, movement.InputState{})
	assert.Equal(t, before, s.Camera.Eye())
}

func TestWalkIntoTree(t *testing.T) {
	s := New(world.Default(), DefaultOptions())

	in := movement.InputState{}
	in.Add(movement.Press(movement.KeyForward))

	var last movement.StepResult
	for i := 0; i < 100; i++ {
		last = s.Step(0.05, in)
		in.Reset()
		if last.Dolly == movement.RejectedCollision {
			break
		}
	}
	require.Equal(t, movement.RejectedCollision, last.Dolly)
	assert.Equal(t, 0, last.HitObject)
	assert.Greater(t, s.Camera.Eye().Z(), float32(-0.86), "stopped before the trunk")
	assert.Zero(t, s.Controller.Speeds().Dolly)
}

func TestResize(t *testing.T) {
	s := New(world.Default(), DefaultOptions())
	s.Resize(1600, 900)
	want := mgl32.Perspective(mgl32.DegToRad(70), 1600.0/900.0, 0.1, 5)
	assert.True(t, want.ApproxEqual(s.Camera.ProjMatrix()))
}

func TestApplyScene(t *testing.T) {
	s := New(world.Default(), DefaultOptions())
	s.Controller.SetSpeeds(movement.Speeds{Dolly: 1, Pan: 1})
	s.Step(0.1, movement.InputState{})

	next := world.Default()
	next.Name = "moved"
	next.Camera = world.CameraStart{Eye: mgl32.Vec3{1, 0.5, 1}, Target: mgl32.Vec3{1, 0.5, 0}}
	s.ApplyScene(next)

	assert.Same(t, next, s.Scene)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 1}, s.Camera.Eye())
	assert.True(t, s.Controller.Speeds().Idle())
}

func TestFrame(t *testing.T) {
	s := New(world.Default(), DefaultOptions())
	list := s.Frame()
	assert.Equal(t, 121, list.Count(scene.MeshGround))
	assert.Equal(t, 3, list.Count(scene.MeshObject))
	assert.Equal(t, s.Camera.ViewMatrix(), list.View)
}

func TestLoadScene(t *testing.T) {
	m := assets.NewManager()

	s, err := LoadScene(m, "")
	require.NoError(t, err)
	assert.Equal(t, "default", s.Name)

	path := filepath.Join(t.TempDir(), "s.toml")
	data, err := world.Encode(world.Default(), world.FormatTOML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err = LoadScene(m, path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Objects.Len())
}

func TestLoadMesh(t *testing.T) {
	m := assets.NewManager()

	mesh, err := LoadMesh(m, world.DefaultModel)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Vertices)

	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))
	mesh, err = LoadMesh(m, path)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 3)

	_, err = LoadMesh(m, "models/none.obj")
	var loadErr *model.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "models/none.obj", loadErr.Path)
}

func TestLoadShader(t *testing.T) {
	vert, frag, err := LoadShader(assets.NewManager())
	require.NoError(t, err)
	assert.Contains(t, vert, "gl_Position")
	assert.Contains(t, frag, "outColor")
}
