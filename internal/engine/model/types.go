// Package model turns raw triangle position streams into indexed meshes.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a unique mesh vertex. Two vertices are the same vertex when their
// positions compare equal.
type Vertex struct {
	Position mgl32.Vec3
}

// Mesh holds unique vertices and a triangle list of indices into them.
// Every index is < len(Vertices) and len(Indices) is a multiple of 3.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Positions returns the vertex positions as a flat x,y,z slice for GPU upload.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
