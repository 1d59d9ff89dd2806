// Package scene assembles what the renderer draws each frame. It holds no GL
// state, so frames can be built and inspected without a context.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/internal/game/world"
)

// MeshKind selects which uploaded geometry a draw uses.
type MeshKind int

const (
	// MeshGround is the unit quad, drawn as a 4 vertex triangle strip.
	MeshGround MeshKind = iota
	// MeshObject is the shared indexed scene mesh.
	MeshObject
)

// Draw is a single draw call: geometry, placement and flat color.
type Draw struct {
	Mesh  MeshKind
	Model mgl32.Mat4
	Color mgl32.Vec4
}

// DrawList is one frame's camera matrices and draw calls, ground first.
type DrawList struct {
	View  mgl32.Mat4
	Proj  mgl32.Mat4
	Draws []Draw
}

// Camera is the view state a frame is built from.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjMatrix() mgl32.Mat4
}

// Builder assembles draw lists, reusing its buffer between frames.
type Builder struct {
	list DrawList
}

// Build returns the draw list for the scene seen from cam. The returned list
// is valid until the next call.
func (b *Builder) Build(cam Camera, s *world.Scene) *DrawList {
	b.list.View = cam.ViewMatrix()
	b.list.Proj = cam.ProjMatrix()
	b.list.Draws = b.list.Draws[:0]

	for _, tile := range s.Ground.Tiles() {
		b.list.Draws = append(b.list.Draws, Draw{
			Mesh:  MeshGround,
			Model: tile.ModelMatrix(),
			Color: s.Ground.Color,
		})
	}
	for _, m := range s.Objects.ModelMatrices() {
		b.list.Draws = append(b.list.Draws, Draw{
			Mesh:  MeshObject,
			Model: m,
			Color: s.Objects.Color,
		})
	}
	return &b.list
}

// Count returns the number of draws of the given kind.
func (l *DrawList) Count(kind MeshKind) int {
	n := 0
	for _, d := range l.Draws {
		if d.Mesh == kind {
			n++
		}
	}
	return n
}
