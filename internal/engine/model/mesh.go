package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/pkg/formats"
)

// Deduplicate builds an indexed mesh from a triangle-corner position stream.
// Repeated positions share one vertex slot; matching is exact, so positions
// that differ in the last bit stay distinct. Drawing the result with its
// indices reproduces the input stream.
func Deduplicate(positions []mgl32.Vec3) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("position count %d is not a multiple of 3", len(positions))
	}

	mesh := &Mesh{
		Indices: make([]uint32, 0, len(positions)),
	}
	slots := make(map[mgl32.Vec3]uint32, len(positions))

	for _, p := range positions {
		idx, ok := slots[p]
		if !ok {
			idx = uint32(len(mesh.Vertices))
			slots[p] = idx
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: p})
		}
		mesh.Indices = append(mesh.Indices, idx)
	}

	mesh.Bounds = computeBounds(mesh.Vertices)
	return mesh, nil
}

// BuildMesh resolves every shape of a parsed OBJ into a triangle-corner stream
// and deduplicates it. path only labels errors.
func BuildMesh(path string, obj *formats.OBJ) (*Mesh, error) {
	if len(obj.Positions)%3 != 0 {
		return nil, &LoadError{Path: path, Msg: fmt.Sprintf("position array length %d is not a multiple of 3", len(obj.Positions))}
	}

	vertexCount := obj.VertexCount()
	corners := make([]mgl32.Vec3, 0, obj.IndexCount())

	for si := range obj.Shapes {
		shape := &obj.Shapes[si]
		if len(shape.Indices)%3 != 0 {
			return nil, &LoadError{Path: path, Msg: fmt.Sprintf("shape %q has %d indices, not a triangle list", shape.Name, len(shape.Indices))}
		}
		for _, idx := range shape.Indices {
			if idx < 0 || idx >= vertexCount {
				return nil, &LoadError{Path: path, Msg: fmt.Sprintf("shape %q references vertex %d of %d", shape.Name, idx, vertexCount)}
			}
			start := 3 * idx
			corners = append(corners, mgl32.Vec3{
				obj.Positions[start+0],
				obj.Positions[start+1],
				obj.Positions[start+2],
			})
		}
	}

	mesh, err := Deduplicate(corners)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return mesh, nil
}

// Reconstruct expands the mesh back into its triangle-corner stream.
func (m *Mesh) Reconstruct() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = m.Vertices[idx].Position
	}
	return out
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}
