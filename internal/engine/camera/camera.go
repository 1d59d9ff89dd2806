// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/grove/pkg/math"
)

// Default projection settings.
const (
	DefaultFOV  float32 = 70 // degrees
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 5
)

var (
	fallbackForward = mgl32.Vec3{0, 0, -1}
	fallbackLeft    = mgl32.Vec3{-1, 0, 0}
)

// FirstPerson is a look-at camera moved by dolly, truck, pan and jump.
// The view matrix is recomputed after every movement.
type FirstPerson struct {
	eye mgl32.Vec3
	at  mgl32.Vec3
	up  mgl32.Vec3

	fov  float32 // vertical, degrees
	near float32
	far  float32

	view mgl32.Mat4
	proj mgl32.Mat4
}

// NewFirstPerson creates a camera at eye looking at target with the world up
// axis and the default projection at an aspect of 1.
func NewFirstPerson(eye, target mgl32.Vec3) *FirstPerson {
	c := &FirstPerson{
		eye:  eye,
		at:   target,
		up:   math.Up,
		fov:  DefaultFOV,
		near: DefaultNear,
		far:  DefaultFar,
	}
	c.updateView()
	c.ComputeProjectionMatrix(1, 1)
	return c
}

// Reset moves the camera to a new placement.
func (c *FirstPerson) Reset(eye, target mgl32.Vec3) {
	c.eye = eye
	c.at = target
	c.updateView()
}

// SetPerspective changes the projection parameters. Call
// ComputeProjectionMatrix afterwards to rebuild the matrix.
func (c *FirstPerson) SetPerspective(fovDegrees, near, far float32) {
	c.fov = fovDegrees
	c.near = near
	c.far = far
}

// ComputeProjectionMatrix rebuilds the projection for a viewport. A zero or
// negative height uses an aspect of 1.
func (c *FirstPerson) ComputeProjectionMatrix(width, height int) {
	aspect := float32(1)
	if height > 0 && width > 0 {
		aspect = float32(width) / float32(height)
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// Forward returns the unit direction from eye to target.
func (c *FirstPerson) Forward() mgl32.Vec3 {
	return math.SafeNormalize(c.at.Sub(c.eye), fallbackForward)
}

// Left returns the unit vector up x forward.
func (c *FirstPerson) Left() mgl32.Vec3 {
	return math.SafeNormalize(c.up.Cross(c.Forward()), fallbackLeft)
}

// Dolly moves eye and target along the forward direction.
func (c *FirstPerson) Dolly(amount float32) {
	d := c.Forward().Mul(amount)
	c.eye = c.eye.Add(d)
	c.at = c.at.Add(d)
	c.updateView()
}

// Truck moves eye and target sideways. Positive amounts move right.
func (c *FirstPerson) Truck(amount float32) {
	d := c.Left().Mul(amount)
	c.eye = c.eye.Sub(d)
	c.at = c.at.Sub(d)
	c.updateView()
}

// Pan turns the target around the eye about the up axis. Positive angles
// (radians) turn right.
func (c *FirstPerson) Pan(angle float32) {
	c.at = math.RotateAround(c.at, c.eye, c.up, -angle)
	c.updateView()
}

// Jump moves eye and target along the up axis.
func (c *FirstPerson) Jump(amount float32) {
	d := c.up.Mul(amount)
	c.eye = c.eye.Add(d)
	c.at = c.at.Add(d)
	c.updateView()
}

// Eye returns the camera position.
func (c *FirstPerson) Eye() mgl32.Vec3 { return c.eye }

// Target returns the look-at point.
func (c *FirstPerson) Target() mgl32.Vec3 { return c.at }

// Up returns the up axis.
func (c *FirstPerson) Up() mgl32.Vec3 { return c.up }

// FOV returns the vertical field of view in degrees.
func (c *FirstPerson) FOV() float32 { return c.fov }

// ViewMatrix returns the current view matrix.
func (c *FirstPerson) ViewMatrix() mgl32.Mat4 { return c.view }

// ProjMatrix returns the current projection matrix.
func (c *FirstPerson) ProjMatrix() mgl32.Mat4 { return c.proj }

// ViewProjMatrix returns proj * view.
func (c *FirstPerson) ViewProjMatrix() mgl32.Mat4 {
	return c.proj.Mul4(c.view)
}

func (c *FirstPerson) updateView() {
	c.view = mgl32.LookAtV(c.eye, c.at, c.up)
}
