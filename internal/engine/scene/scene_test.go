package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/boardview/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/boardview/internal/engine/model"
	"github.com/Faultbox/boardview/pkg/math"
)

const tol = 1e-5

func TestTransformDefaults(t *testing.T) {
	tr := NewTransform()
	if tr.Position() != math.V3(0, 0, 0) {
		t.Errorf("Position() = %+v, want origin", tr.Position())
	}
	if tr.Scale() != math.V3(1, 1, 1) {
		t.Errorf("Scale() = %+v, want (1, 1, 1)", tr.Scale())
	}
	if tr.Rotation() != math.QuatIdentity() {
		t.Errorf("Rotation() = %+v, want identity", tr.Rotation())
	}
	if !tr.WorldMatrix().ApproxEqual(math.Identity(), tol) {
		t.Errorf("WorldMatrix() = %v, want identity", tr.WorldMatrix())
	}
}

func TestTransformMutators(t *testing.T) {
	tr := NewTransform()
	tr.ScaleBy(math.Fill(2))
	tr.ScaleBy(math.Fill(2))
	if tr.Scale() != math.V3(4, 4, 4) {
		t.Errorf("Scale() = %+v, want (4, 4, 4)", tr.Scale())
	}

	tr.Translate(math.V3(1, 0, 0))
	tr.Translate(math.V3(0, 2, -1))
	if tr.Position() != math.V3(1, 2, -1) {
		t.Errorf("Position() = %+v, want (1, 2, -1)", tr.Position())
	}

	tr.SetPosition(math.V3(5, 5, 5))
	if tr.Position() != math.V3(5, 5, 5) {
		t.Errorf("Position() after SetPosition = %+v, want (5, 5, 5)", tr.Position())
	}

	tr.SetScale(math.Fill(0.1))
	if tr.Scale() != math.Fill(0.1) {
		t.Errorf("Scale() after SetScale = %+v", tr.Scale())
	}
}

func TestWorldMatrixOrder(t *testing.T) {
	tr := NewTransform()
	tr.ScaleBy(math.Fill(2))
	q, err := math.QuatFromAxisAngle(math.V3(0, 1, 0), gomath.Pi/2)
	if err != nil {
		t.Fatalf("QuatFromAxisAngle: %v", err)
	}
	tr.SetRotation(q)
	tr.SetPosition(math.V3(10, 0, 0))

	// Scale, then rotate +X onto -Z, then translate.
	got := tr.WorldMatrix().TransformVec3(math.V3(1, 0, 0))
	want := math.V3(10, 0, -2)
	if !got.ApproxEqual(want, tol) {
		t.Errorf("WorldMatrix() * (1, 0, 0) = %+v, want %+v", got, want)
	}
}

func TestRotateComposes(t *testing.T) {
	quarter, _ := math.QuatFromAxisAngle(math.V3(0, 1, 0), gomath.Pi/2)
	tr := NewTransform()
	tr.Rotate(quarter)
	tr.Rotate(quarter)

	got := tr.WorldMatrix().TransformDirection(math.V3(1, 0, 0))
	if !got.ApproxEqual(math.V3(-1, 0, 0), tol) {
		t.Errorf("two quarter turns map +X to %+v, want -X", got)
	}
}

func newMesh(t *testing.T, dev *gfxtest.Device) *model.Mesh {
	t.Helper()
	m, err := model.New(model.Plane(1), dev)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func TestSceneAddFind(t *testing.T) {
	dev := gfxtest.New()
	s := New()

	names := []string{"board", "king", "knight", "rook"}
	for _, n := range names {
		if err := s.Add(NewObject3D(n, newMesh(t, dev))); err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	for i, o := range s.Objects() {
		if o.Name != names[i] {
			t.Errorf("Objects()[%d] = %s, want %s", i, o.Name, names[i])
		}
	}
	if s.Find("rook") == nil || s.Find("queen") != nil {
		t.Error("Find() lookup mismatch")
	}

	tests := []struct {
		name string
		obj  *Object3D
	}{
		{"nil", nil},
		{"unnamed", NewObject3D("", nil)},
		{"duplicate", NewObject3D("king", nil)},
	}
	for _, tt := range tests {
		if err := s.Add(tt.obj); err == nil {
			t.Errorf("Add(%s) succeeded, want error", tt.name)
		}
	}
}

func TestSceneCloseFreesMeshes(t *testing.T) {
	dev := gfxtest.New()
	s := New()
	s.Add(NewObject3D("a", newMesh(t, dev)))
	s.Add(NewObject3D("b", newMesh(t, dev)))

	s.Close()
	if len(dev.DeletedMeshes) != 2 {
		t.Errorf("DeletedMeshes = %v, want 2 entries", dev.DeletedMeshes)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", s.Len())
	}
}
