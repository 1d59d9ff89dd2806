package world

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/grove/internal/logger"
)

// sceneFile is the on-disk layout shared by the YAML and TOML encodings.
type sceneFile struct {
	Name        string      `yaml:"name" toml:"name"`
	Model       string      `yaml:"model" toml:"model"`
	ObjectColor *mgl32.Vec4 `yaml:"object_color,omitempty" toml:"object_color,omitempty"`
	Ground      groundFile  `yaml:"ground" toml:"ground"`
	Camera      cameraFile  `yaml:"camera" toml:"camera"`
	Objects     []objFile   `yaml:"objects" toml:"objects"`
}

type groundFile struct {
	HalfExtents mgl32.Vec3  `yaml:"half_extents" toml:"half_extents"`
	FloorLevel  float32     `yaml:"floor_level" toml:"floor_level"`
	Color       *mgl32.Vec4 `yaml:"color,omitempty" toml:"color,omitempty"`
}

type cameraFile struct {
	Eye    mgl32.Vec3 `yaml:"eye" toml:"eye"`
	Target mgl32.Vec3 `yaml:"target" toml:"target"`
}

type objFile struct {
	Name     string      `yaml:"name" toml:"name"`
	Position mgl32.Vec3  `yaml:"position" toml:"position"`
	Scale    *mgl32.Vec3 `yaml:"scale,omitempty" toml:"scale,omitempty"`
}

// Format identifies a scene file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the encoding by file extension. Anything that is not
// .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads and validates a scene file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return Decode(path, data)
}

// Decode parses scene data. The encoding is chosen from name's extension.
// Omitted colors and scales take their defaults; the result is validated.
func Decode(name string, data []byte) (*Scene, error) {
	var f sceneFile
	switch FormatFromPath(name) {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding scene %s: %w", name, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding scene %s: %w", name, err)
		}
	}

	scene := f.scene()
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("scene loaded",
		zap.String("name", scene.Name),
		zap.String("source", name),
		zap.Int("objects", scene.Objects.Len()),
		zap.Int("tiles", scene.Ground.TileCount()))
	return scene, nil
}

func (f *sceneFile) scene() *Scene {
	s := &Scene{
		Name:  f.Name,
		Model: f.Model,
		Ground: Ground{
			HalfExtents: f.Ground.HalfExtents,
			FloorLevel:  f.Ground.FloorLevel,
			Color:       TileColor,
		},
		Objects: &ObjectSet{Color: TreeColor},
		Camera: CameraStart{
			Eye:    f.Camera.Eye,
			Target: f.Camera.Target,
		},
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if f.Ground.Color != nil {
		s.Ground.Color = *f.Ground.Color
	}
	if f.ObjectColor != nil {
		s.Objects.Color = *f.ObjectColor
	}
	for _, o := range f.Objects {
		scale := mgl32.Vec3{1, 1, 1}
		if o.Scale != nil {
			scale = *o.Scale
		}
		s.Objects.objects = append(s.Objects.objects, SceneObject{
			Name:     o.Name,
			Position: o.Position,
			Scale:    scale,
		})
	}
	return s
}

// Encode writes the scene in the given format.
func Encode(s *Scene, format Format) ([]byte, error) {
	f := sceneFile{
		Name:        s.Name,
		Model:       s.Model,
		ObjectColor: &s.Objects.Color,
		Ground: groundFile{
			HalfExtents: s.Ground.HalfExtents,
			FloorLevel:  s.Ground.FloorLevel,
			Color:       &s.Ground.Color,
		},
		Camera: cameraFile{Eye: s.Camera.Eye, Target: s.Camera.Target},
	}
	for _, o := range s.Objects.All() {
		scale := o.Scale
		f.Objects = append(f.Objects, objFile{Name: o.Name, Position: o.Position, Scale: &scale})
	}

	if format == FormatTOML {
		return toml.Marshal(f)
	}
	return yaml.Marshal(f)
}
