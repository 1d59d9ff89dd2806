package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyOBJ     = errors.New("empty OBJ data")
	ErrMalformedOBJ = errors.New("malformed OBJ record")
)

// OBJShape is a named group of triangles. Indices reference OBJ.Positions by
// vertex number (0-based) and come in groups of three.
type OBJShape struct {
	Name    string
	Indices []int
}

// TriangleCount returns the number of triangles in the shape.
func (s *OBJShape) TriangleCount() int {
	return len(s.Indices) / 3
}

// OBJ holds the position stream and triangulated faces of a Wavefront OBJ file.
// Normals, texture coordinates and materials are skipped.
type OBJ struct {
	// Positions is the flat x,y,z array of every "v" record.
	Positions []float32
	Shapes    []OBJShape
	Warnings  []string
}

// VertexCount returns the number of position records.
func (o *OBJ) VertexCount() int {
	return len(o.Positions) / 3
}

// IndexCount returns the total number of face indices across all shapes.
func (o *OBJ) IndexCount() int {
	n := 0
	for i := range o.Shapes {
		n += len(o.Shapes[i].Indices)
	}
	return n
}

// ParseOBJ parses a Wavefront OBJ file from raw bytes.
// Polygons are fan-triangulated. Relative (negative) indices are resolved
// against the positions read so far; range checks are left to the caller.
func ParseOBJ(data []byte) (*OBJ, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyOBJ
	}

	obj := &OBJ{}
	current := &OBJShape{}

	flush := func() {
		if len(current.Indices) > 0 {
			obj.Shapes = append(obj.Shapes, *current)
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrMalformedOBJ, line)
			}
			for _, f := range fields[1:4] {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, line, err)
				}
				obj.Positions = append(obj.Positions, float32(v))
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrMalformedOBJ, line)
			}
			face := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, err := parseFaceIndex(f, obj.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, line, err)
				}
				face = append(face, idx)
			}
			// Fan triangulation around the first corner
			for i := 1; i+1 < len(face); i++ {
				current.Indices = append(current.Indices, face[0], face[i], face[i+1])
			}

		case "o", "g":
			flush()
			name := ""
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			current = &OBJShape{Name: name}

		case "vn", "vt", "vp", "s", "l", "mtllib", "usemtl":
			// Not needed for a position-only mesh

		default:
			obj.Warnings = append(obj.Warnings, fmt.Sprintf("line %d: unknown record %q", line, fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	flush()
	return obj, nil
}

// parseFaceIndex resolves the vertex part of "v", "v/vt", "v//vn" or "v/vt/vn".
func parseFaceIndex(token string, vertexCount int) (int, error) {
	vertex, _, _ := strings.Cut(token, "/")
	n, err := strconv.Atoi(vertex)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", token)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return vertexCount + n, nil
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}
