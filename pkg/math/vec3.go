// Package math provides the vector, matrix and quaternion types used by the
// scene and renderer.
//
// Matrices are column-major (OpenGL layout) and the coordinate system is
// right-handed: +Y is up and the camera looks down -Z in view space.
package math

import (
	"errors"
	"math"
)

// Epsilon is the magnitude below which a vector or determinant is treated as zero.
const Epsilon = 1e-6

// Degenerate input errors.
var (
	ErrZeroVector        = errors.New("zero-length vector")
	ErrParallelUp        = errors.New("forward direction is parallel to up")
	ErrZeroViewport      = errors.New("viewport has zero width or height")
	ErrInvalidFOV        = errors.New("field of view must be in (0, pi)")
	ErrInvalidClipPlanes = errors.New("clip planes must satisfy 0 < near < far")
	ErrSingularMatrix    = errors.New("matrix is not invertible")
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 returns the vector (x, y, z).
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Fill returns a vector with all components set to s.
func Fill(s float32) Vec3 {
	return Vec3{s, s, s}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector in the direction of v.
// It fails with ErrZeroVector when the length is below Epsilon.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}, ErrZeroVector
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether every component differs by at most tol.
func (v Vec3) ApproxEqual(other Vec3, tol float32) bool {
	return abs32(v.X-other.X) <= tol && abs32(v.Y-other.Y) <= tol && abs32(v.Z-other.Z) <= tol
}

// Array returns the components as an array (for uniform uploads).
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
