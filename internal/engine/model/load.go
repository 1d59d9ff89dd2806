package model

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/logger"
	"github.com/Faultbox/grove/pkg/formats"
)

// LoadError reports a model that could not be read, parsed or indexed.
// Startup aborts on it rather than running with a partial scene.
type LoadError struct {
	Path string
	Msg  string
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("failed to load model %s (%s): %v", e.Path, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("failed to load model %s (%s)", e.Path, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("failed to load model %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("failed to load model %s", e.Path)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads, parses and indexes an OBJ model from disk.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Decode(path, data)
}

// Decode parses and indexes OBJ data. path labels errors and log lines.
func Decode(path string, data []byte) (*Mesh, error) {
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	for _, w := range obj.Warnings {
		logger.Warn("model warning", zap.String("path", path), zap.String("warning", w))
	}

	mesh, err := BuildMesh(path, obj)
	if err != nil {
		return nil, err
	}

	logger.Debug("model loaded",
		zap.String("path", path),
		zap.Int("raw_vertices", obj.IndexCount()),
		zap.Int("unique_vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return mesh, nil
}
