package picking

import (
	"testing"

	"github.com/Faultbox/boardview/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/boardview/internal/engine/model"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.V3(-1, -1, -1), Max: math.V3(1, 1, 1)}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front", Ray{Origin: math.V3(0, 0, 5), Direction: math.V3(0, 0, -1)}, 4, true},
		{"inside", Ray{Origin: math.V3(0, 0, 0), Direction: math.V3(1, 0, 0)}, 1, true},
		{"miss", Ray{Origin: math.V3(3, 0, 5), Direction: math.V3(0, 0, -1)}, 0, false},
		{"behind", Ray{Origin: math.V3(0, 0, 5), Direction: math.V3(0, 0, 1)}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("IntersectAABB() hit = %v, want %v", hit, tt.hit)
			}
			if hit && got != tt.wantT {
				t.Errorf("IntersectAABB() t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	view, err := math.LookAt(math.V3(0, 0, 5), math.Vec3{}, math.V3(0, 1, 0))
	if err != nil {
		t.Fatalf("LookAt: %v", err)
	}
	proj, err := math.PerspectiveMatrix(800, 600, 1, 100, 0.1)
	if err != nil {
		t.Fatalf("PerspectiveMatrix: %v", err)
	}

	r, err := ScreenToRay(400, 300, 800, 600, view, proj)
	if err != nil {
		t.Fatalf("ScreenToRay: %v", err)
	}
	if !r.Direction.ApproxEqual(math.V3(0, 0, -1), 1e-4) {
		t.Errorf("Direction = %v, want (0,0,-1)", r.Direction)
	}
	if !r.Origin.ApproxEqual(math.V3(0, 0, 4.9), 1e-3) {
		t.Errorf("Origin = %v, want near plane (0,0,4.9)", r.Origin)
	}
}

func TestTransformBounds(t *testing.T) {
	b := model.Bounds{Min: math.V3(-1, -1, -1), Max: math.V3(1, 1, 1)}
	world := math.Translate(math.V3(10, 0, 0)).Mul(math.Scale(math.V3(2, 1, 1)))

	got := TransformBounds(b, world)
	want := AABB{Min: math.V3(8, -1, -1), Max: math.V3(12, 1, 1)}
	if !got.Min.ApproxEqual(want.Min, 1e-6) || !got.Max.ApproxEqual(want.Max, 1e-6) {
		t.Errorf("TransformBounds() = %+v, want %+v", got, want)
	}
}

func TestPickNearest(t *testing.T) {
	dev := gfxtest.New()
	newCube := func(name string, z float32) *scene.Object3D {
		m, err := model.New(model.Cube(1), dev)
		if err != nil {
			t.Fatalf("model.New: %v", err)
		}
		obj := scene.NewObject3D(name, m)
		obj.Transform.SetPosition(math.V3(0, 0, z))
		return obj
	}
	far := newCube("far", -3)
	near := newCube("near", 0)
	gone := newCube("gone", 2)
	gone.Close()

	r := Ray{Origin: math.V3(0, 0, 5), Direction: math.V3(0, 0, -1)}
	got, dist := Pick(r, []*scene.Object3D{far, near, gone})
	if got != near {
		t.Fatalf("Pick() = %v, want near", got)
	}
	if dist != 4.5 {
		t.Errorf("Pick() distance = %v, want 4.5", dist)
	}

	miss := Ray{Origin: math.V3(5, 5, 5), Direction: math.V3(0, 0, -1)}
	if got, _ := Pick(miss, []*scene.Object3D{far, near}); got != nil {
		t.Errorf("Pick(miss) = %v, want nil", got.Name)
	}
}
