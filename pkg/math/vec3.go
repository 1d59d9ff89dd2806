// Package math provides the small vector helpers shared by the camera, the
// movement controller and the scene on top of mgl32.
package math

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Strict turns non-finite arithmetic into a panic instead of a silent fallback.
// Debug runs enable it; release runs keep the fallback.
var Strict = false

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// SafeNormalize returns v scaled to unit length. A zero-length or non-finite
// input returns fallback, or panics when Strict is set.
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || !IsFinite(l) || !IsFiniteVec3(v) {
		if Strict {
			panic(fmt.Sprintf("math: cannot normalize %v", v))
		}
		return fallback
	}
	return v.Mul(1 / l)
}

// Clamp limits f to [lo, hi].
func Clamp(f, lo, hi float32) float32 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// WithinHalfWidth reports whether |f| <= halfWidth.
func WithinHalfWidth(f, halfWidth float32) bool {
	return math32.Abs(f) <= halfWidth
}
