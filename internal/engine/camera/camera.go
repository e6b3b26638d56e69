// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/boardview/pkg/math"
)

// Camera is a fixed-position perspective camera.
type Camera struct {
	Eye  math.Vec3
	Up   math.Vec3
	FovY float32 // radians
	Near float32
	Far  float32
}

// New returns a camera at eye with +Y up.
func New(eye math.Vec3, fovY, near, far float32) *Camera {
	return &Camera{
		Eye:  eye,
		Up:   math.V3(0, 1, 0),
		FovY: fovY,
		Near: near,
		Far:  far,
	}
}

// LookAt returns the view matrix aimed at target.
func (c *Camera) LookAt(target math.Vec3) (math.Mat4, error) {
	return math.ViewMatrix(c.Eye, target.Sub(c.Eye), c.Up)
}

// Look returns the view matrix facing along forward.
func (c *Camera) Look(forward math.Vec3) (math.Mat4, error) {
	return math.ViewMatrix(c.Eye, forward, c.Up)
}

// Projection returns the perspective matrix for a width x height viewport.
func (c *Camera) Projection(width, height int) (math.Mat4, error) {
	return math.PerspectiveMatrix(width, height, c.FovY, c.Far, c.Near)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera sized for a board a couple of units across.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        1.5,
		RotationX:       0.8,
		MinDistance:     0.3,
		MaxDistance:     20,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	return c.Center.Add(math.V3(
		c.Distance*float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		c.Distance*float32(gomath.Sin(pitch)),
		c.Distance*float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	))
}

// ViewMatrix returns the view matrix looking from Position at Center.
func (c *OrbitCamera) ViewMatrix() (math.Mat4, error) {
	return math.LookAt(c.Position(), c.Center, math.V3(0, 1, 0))
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
