// Package world holds the static scene: the tiled ground, the placed objects
// and the collision test against them.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"

	"github.com/Faultbox/grove/pkg/math"
)

// DefaultModel is the asset path of the mesh shared by scene objects.
const DefaultModel = "models/lowpolytree.obj"

var (
	// TileColor is the color of every ground tile.
	TileColor = mgl32.Vec4{1, 1, 1, 1}
	// TreeColor is the default color of scene objects.
	TreeColor = mgl32.Vec4{0.48, 0.99, 0, 1}
)

// CameraStart is the initial camera placement of a scene.
type CameraStart struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// Scene is a complete static layout: ground, objects and camera start.
type Scene struct {
	Name    string
	Model   string
	Ground  Ground
	Objects *ObjectSet
	Camera  CameraStart
}

// Validate checks the scene and returns every problem found. Each one is a
// *ConfigError; use multierr.Errors to list them.
func (s *Scene) Validate() error {
	var err error
	if s.Model == "" {
		err = multierr.Append(err, configErrorf("model", "must name a mesh"))
	}
	groundErr := s.Ground.validate()
	err = multierr.Append(err, groundErr)

	for i, o := range s.Objects.All() {
		err = multierr.Append(err, o.validate(i))
	}

	eye, target := s.Camera.Eye, s.Camera.Target
	switch {
	case !math.IsFiniteVec3(eye):
		err = multierr.Append(err, configErrorf("camera.eye", "must be finite, got %v", eye))
	case !math.IsFiniteVec3(target):
		err = multierr.Append(err, configErrorf("camera.target", "must be finite, got %v", target))
	case eye.ApproxEqual(target):
		err = multierr.Append(err, configErrorf("camera.target", "must differ from the eye"))
	case groundErr == nil && !s.Ground.Contains(eye):
		err = multierr.Append(err, configErrorf("camera.eye", "%v is outside the ground volume", eye))
	}
	return err
}

// Default returns the built-in demo layout: a 11x11 tile ground and three trees.
func Default() *Scene {
	scale := mgl32.Vec3{0.5, 0.5, 0.5}
	objects, _ := NewObjectSet(TreeColor,
		SceneObject{Name: "tree-center", Position: mgl32.Vec3{0, 0.8, -1}, Scale: scale},
		SceneObject{Name: "tree-east", Position: mgl32.Vec3{4, 0.8, 0}, Scale: scale},
		SceneObject{Name: "tree-west", Position: mgl32.Vec3{-4, 0.8, 1}, Scale: scale},
	)
	return &Scene{
		Name:  "default",
		Model: DefaultModel,
		Ground: Ground{
			HalfExtents: mgl32.Vec3{5, 1, 5},
			FloorLevel:  0.5,
			Color:       TileColor,
		},
		Objects: objects,
		Camera: CameraStart{
			Eye:    mgl32.Vec3{0, 0.5, 2.5},
			Target: mgl32.Vec3{0, 0.5, 0},
		},
	}
}
