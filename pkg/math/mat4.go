package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelMatrix returns translate(position) * scale(scale), the placement used for
// every scene object.
func ModelMatrix(position, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// InverseModelMatrix undoes ModelMatrix without a general 4x4 inverse.
// Scale components must be non-zero.
func InverseModelMatrix(position, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(1/scale[0], 1/scale[1], 1/scale[2]).
		Mul4(mgl32.Translate3D(-position[0], -position[1], -position[2]))
}

// TransformPoint transforms p by m with w=1.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// RotateAround rotates point p around pivot by angle radians about axis.
// axis should be normalized.
func RotateAround(p, pivot, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	v := p.Sub(pivot)

	// Rodrigues' rotation formula
	rotated := v.Mul(c).
		Add(axis.Cross(v).Mul(s)).
		Add(axis.Mul(axis.Dot(v) * (1 - c)))
	return pivot.Add(rotated)
}
