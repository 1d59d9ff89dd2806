package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/pkg/math"
)

// SceneObject is one placed instance of the shared scene mesh.
type SceneObject struct {
	Name     string
	Position mgl32.Vec3
	Scale    mgl32.Vec3
}

// ModelMatrix returns translate(Position) * scale(Scale).
func (o SceneObject) ModelMatrix() mgl32.Mat4 {
	return math.ModelMatrix(o.Position, o.Scale)
}

func (o SceneObject) validate(i int) error {
	field := fmt.Sprintf("objects[%d]", i)
	if o.Name != "" {
		field = fmt.Sprintf("objects[%d](%s)", i, o.Name)
	}
	if !math.IsFiniteVec3(o.Position) {
		return configErrorf(field+".position", "must be finite, got %v", o.Position)
	}
	for axis := 0; axis < 3; axis++ {
		s := o.Scale[axis]
		if s == 0 || !math.IsFinite(s) {
			return configErrorf(field+".scale", "degenerate scale %v", o.Scale)
		}
	}
	return nil
}

// ObjectSet is the ordered list of placed objects sharing one mesh and color.
// It is fixed once built.
type ObjectSet struct {
	Color   mgl32.Vec4
	objects []SceneObject
}

// NewObjectSet validates and stores objects in the given order.
func NewObjectSet(color mgl32.Vec4, objects ...SceneObject) (*ObjectSet, error) {
	for i, o := range objects {
		if err := o.validate(i); err != nil {
			return nil, err
		}
	}
	set := &ObjectSet{
		Color:   color,
		objects: make([]SceneObject, len(objects)),
	}
	copy(set.objects, objects)
	return set, nil
}

// Len returns the number of objects.
func (s *ObjectSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objects)
}

// At returns the i-th object.
func (s *ObjectSet) At(i int) SceneObject {
	return s.objects[i]
}

// All returns a copy of the objects in order.
func (s *ObjectSet) All() []SceneObject {
	if s == nil {
		return nil
	}
	out := make([]SceneObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// ModelMatrices returns the placement matrix of every object in order.
func (s *ObjectSet) ModelMatrices() []mgl32.Mat4 {
	if s == nil {
		return nil
	}
	out := make([]mgl32.Mat4, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.ModelMatrix()
	}
	return out
}
