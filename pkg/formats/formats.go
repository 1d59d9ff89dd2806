// Package formats provides parsers for the asset file formats used by the demo.
//
// Only Wavefront OBJ is supported, and only its vertex positions and faces.
package formats
