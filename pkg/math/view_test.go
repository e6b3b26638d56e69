package math

import (
	"errors"
	"math"
	"testing"
)

func TestViewMatrixMapsEyeAndTarget(t *testing.T) {
	eye := V3(0, 1, -1)
	target := V3(0.3, 0, 0.6)
	forward := target.Sub(eye)

	view, err := ViewMatrix(eye, forward, V3(0, 1, 0))
	if err != nil {
		t.Fatalf("ViewMatrix: %v", err)
	}

	if got := view.TransformVec3(eye); !got.ApproxEqual(Vec3{}, 1e-5) {
		t.Errorf("eye in view space = %v, want origin", got)
	}

	// Right-handed: the target lies on the negative Z axis at its distance.
	want := V3(0, 0, -forward.Length())
	if got := view.TransformVec3(target); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("target in view space = %v, want %v", got, want)
	}
}

func TestViewMatrixForwardLengthIrrelevant(t *testing.T) {
	eye := V3(2, 3, 4)
	a, err := ViewMatrix(eye, V3(0, -1, -1), V3(0, 1, 0))
	if err != nil {
		t.Fatalf("ViewMatrix: %v", err)
	}
	b, err := ViewMatrix(eye, V3(0, -7, -7), V3(0, 1, 0))
	if err != nil {
		t.Fatalf("ViewMatrix: %v", err)
	}
	if !a.ApproxEqual(b, 1e-5) {
		t.Error("ViewMatrix should only depend on forward direction")
	}
}

func TestLookAtMatchesViewMatrix(t *testing.T) {
	eye, target, up := V3(0, 0, 5), V3(1, 0, 0), V3(0, 1, 0)
	a, err := LookAt(eye, target, up)
	if err != nil {
		t.Fatalf("LookAt: %v", err)
	}
	b, _ := ViewMatrix(eye, target.Sub(eye), up)
	if a != b {
		t.Errorf("LookAt = %v, want %v", a, b)
	}
	if a[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", a[15])
	}
}

func TestViewMatrixDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
		up      Vec3
		want    error
	}{
		{"zero forward", Vec3{}, V3(0, 1, 0), ErrZeroVector},
		{"forward along up", V3(0, 3, 0), V3(0, 1, 0), ErrParallelUp},
		{"forward against up", V3(0, -1, 0), V3(0, 1, 0), ErrParallelUp},
		{"zero up", V3(0, 0, -1), Vec3{}, ErrParallelUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ViewMatrix(V3(0, 0, 0), tt.forward, tt.up)
			if !errors.Is(err, tt.want) {
				t.Errorf("ViewMatrix() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPerspectiveMatrixClipPlanes(t *testing.T) {
	const near, far = 0.1, 1024.0
	eye := V3(0, 1, -1)
	forward, _ := V3(0.2, -1, 1.5).Normalize()

	view, err := ViewMatrix(eye, forward, V3(0, 1, 0))
	if err != nil {
		t.Fatalf("ViewMatrix: %v", err)
	}
	proj, err := PerspectiveMatrix(1920, 1080, math.Pi/3, far, near)
	if err != nil {
		t.Fatalf("PerspectiveMatrix: %v", err)
	}
	vp := proj.Mul(view)

	nearPoint := vp.TransformVec3(eye.Add(forward.Scale(near)))
	if abs32(nearPoint.Z+1) > 1e-4 || !nearPoint.ApproxEqual(V3(0, 0, nearPoint.Z), 1e-4) {
		t.Errorf("near point NDC = %v, want (0, 0, -1)", nearPoint)
	}
	farPoint := vp.TransformVec3(eye.Add(forward.Scale(far)))
	if abs32(farPoint.Z-1) > 1e-3 {
		t.Errorf("far point NDC z = %v, want 1", farPoint.Z)
	}
}

func TestPerspectiveMatrixAspect(t *testing.T) {
	m, err := PerspectiveMatrix(1920, 1080, math.Pi/3, 100, 0.1)
	if err != nil {
		t.Fatalf("PerspectiveMatrix: %v", err)
	}
	aspect := m[5] / m[0]
	if abs32(aspect-1920.0/1080.0) > 1e-5 {
		t.Errorf("aspect = %v, want %v", aspect, 1920.0/1080.0)
	}
}

func TestPerspectiveMatrixPreconditions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fov, far, nr  float32
		want          error
	}{
		{"zero height", 800, 0, 1, 100, 0.1, ErrZeroViewport},
		{"zero width", 0, 600, 1, 100, 0.1, ErrZeroViewport},
		{"negative height", 800, -1, 1, 100, 0.1, ErrZeroViewport},
		{"zero fov", 800, 600, 0, 100, 0.1, ErrInvalidFOV},
		{"fov pi", 800, 600, math.Pi, 100, 0.1, ErrInvalidFOV},
		{"zero near", 800, 600, 1, 100, 0, ErrInvalidClipPlanes},
		{"far before near", 800, 600, 1, 0.05, 0.1, ErrInvalidClipPlanes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PerspectiveMatrix(tt.width, tt.height, tt.fov, tt.far, tt.nr)
			if !errors.Is(err, tt.want) {
				t.Errorf("PerspectiveMatrix() error = %v, want %v", err, tt.want)
			}
		})
	}
}
