package world

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/pkg/math"
)

// CollisionHalfWidth is the half width of an object's blocking footprint,
// measured in object space.
const CollisionHalfWidth float32 = 0.3

// CollisionMode selects how candidate positions are tested against objects.
type CollisionMode int

const (
	// CollisionOff never reports a hit and tests no object.
	CollisionOff CollisionMode = iota
	// CollisionBroad applies each object's model matrix to the candidate and
	// reports a hit when the local x or z lies within the half width.
	CollisionBroad
	// CollisionFootprint is the default. It departs from the broad formula:
	// the candidate is mapped through the inverse placement into object
	// space, and a hit needs both local x and z within the half width.
	CollisionFootprint
)

var collisionModeNames = map[CollisionMode]string{
	CollisionOff:       "off",
	CollisionBroad:     "broad",
	CollisionFootprint: "footprint",
}

func (m CollisionMode) String() string {
	if name, ok := collisionModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CollisionMode(%d)", int(m))
}

// ParseCollisionMode parses "off", "broad" or "footprint". An empty string
// selects footprint.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return CollisionOff, nil
	case "broad":
		return CollisionBroad, nil
	case "", "footprint":
		return CollisionFootprint, nil
	}
	return CollisionOff, &ConfigError{Field: "controls.collision", Reason: fmt.Sprintf("unknown mode %q", s)}
}

// Collider tests candidate camera positions against a fixed object set.
type Collider struct {
	Mode      CollisionMode
	HalfWidth float32

	// Per-object transforms, precomputed for the active mode.
	transforms []mgl32.Mat4
}

// NewCollider builds a collider over objects. Objects must not change afterwards.
func NewCollider(mode CollisionMode, objects *ObjectSet) *Collider {
	c := &Collider{Mode: mode, HalfWidth: CollisionHalfWidth}
	for _, o := range objects.All() {
		switch mode {
		case CollisionBroad:
			c.transforms = append(c.transforms, math.ModelMatrix(o.Position, o.Scale))
		case CollisionFootprint:
			c.transforms = append(c.transforms, math.InverseModelMatrix(o.Position, o.Scale))
		}
	}
	return c
}

// Test reports whether the candidate position hits any object.
func (c *Collider) Test(candidate mgl32.Vec3) bool {
	_, hit := c.Hit(candidate)
	return hit
}

// Hit returns the index of the first object the candidate hits.
func (c *Collider) Hit(candidate mgl32.Vec3) (int, bool) {
	if c == nil || c.Mode == CollisionOff {
		return -1, false
	}
	for i, m := range c.transforms {
		local := math.TransformPoint(m, candidate)
		inX := math.WithinHalfWidth(local.X(), c.HalfWidth)
		inZ := math.WithinHalfWidth(local.Z(), c.HalfWidth)

		switch c.Mode {
		case CollisionBroad:
			if inX || inZ {
				return i, true
			}
		case CollisionFootprint:
			if inX && inZ {
				return i, true
			}
		}
	}
	return -1, false
}
