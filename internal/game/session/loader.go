package session

import (
	"errors"
	"os"

	"github.com/Faultbox/grove/internal/assets"
	"github.com/Faultbox/grove/internal/engine/model"
	"github.com/Faultbox/grove/internal/game/world"
)

// LoadScene reads the scene at path, or the default scene from the asset
// manager when path is empty.
func LoadScene(m *assets.Manager, path string) (*world.Scene, error) {
	if path != "" {
		return world.LoadFile(path)
	}
	data, err := m.Load(assets.DefaultScene)
	if err != nil {
		return nil, err
	}
	return world.Decode(assets.DefaultScene, data)
}

// LoadMesh resolves name through the asset manager, falling back to a file
// on disk.
func LoadMesh(m *assets.Manager, name string) (*model.Mesh, error) {
	data, err := m.Load(name)
	if err == nil {
		return model.Decode(name, data)
	}
	if !errors.Is(err, assets.ErrNotFound) && !errors.Is(err, os.ErrInvalid) {
		return nil, &model.LoadError{Path: name, Err: err}
	}
	return model.Load(name)
}

// LoadShader reads the scene shader pair.
func LoadShader(m *assets.Manager) (vertex, fragment string, err error) {
	if vertex, err = m.LoadString(assets.VertexShader); err != nil {
		return "", "", err
	}
	if fragment, err = m.LoadString(assets.FragmentShader); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}
