package math

import "math"

// ViewMatrix returns a right-handed view matrix for a camera at eye looking
// along forward. The look target is eye+forward; forward need not be unit length.
func ViewMatrix(eye, forward, up Vec3) (Mat4, error) {
	f, err := forward.Normalize()
	if err != nil {
		return Identity(), err
	}
	s, err := f.Cross(up).Normalize()
	if err != nil {
		return Identity(), ErrParallelUp
	}
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}, nil
}

// LookAt returns a view matrix looking from eye towards target.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	return ViewMatrix(eye, target.Sub(eye), up)
}

// PerspectiveMatrix returns an OpenGL-style projection for a viewport of
// width x height pixels. Points on the near plane map to NDC z=-1 and points
// on the far plane to z=+1. fovY is the vertical field of view in radians.
func PerspectiveMatrix(width, height int, fovY, far, near float32) (Mat4, error) {
	if width <= 0 || height <= 0 {
		return Identity(), ErrZeroViewport
	}
	if fovY <= 0 || fovY >= math.Pi {
		return Identity(), ErrInvalidFOV
	}
	if near <= 0 || far <= near {
		return Identity(), ErrInvalidClipPlanes
	}
	aspect := float32(width) / float32(height)
	return Perspective(fovY, aspect, near, far), nil
}
