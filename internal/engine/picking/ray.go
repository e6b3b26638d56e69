// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/boardview/internal/engine/model"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, view, proj math.Mat4) (Ray, error) {
	invViewProj, err := proj.Mul(view).Inverse()
	if err != nil {
		return Ray{}, err
	}

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	// Unproject near and far points
	nearWorld := invViewProj.TransformVec3(math.V3(ndcX, ndcY, -1))
	farWorld := invViewProj.TransformVec3(math.V3(ndcX, ndcY, 1))

	dir, err := farWorld.Sub(nearWorld).Normalize()
	if err != nil {
		return Ray{}, err
	}
	return Ray{Origin: nearWorld, Direction: dir}, nil
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// TransformBounds returns the world-space box enclosing local bounds under world.
func TransformBounds(b model.Bounds, world math.Mat4) AABB {
	var box AABB
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		p := world.TransformVec3(corner)
		if i == 0 {
			box = AABB{Min: p, Max: p}
			continue
		}
		box.Min = math.V3(min(box.Min.X, p.X), min(box.Min.Y, p.Y), min(box.Min.Z, p.Z))
		box.Max = math.V3(max(box.Max.X, p.X), max(box.Max.Y, p.Y), max(box.Max.Z, p.Z))
	}
	return box
}

// Pick returns the nearest object whose world bounds the ray hits, and the
// distance to it. It returns nil when nothing is hit.
func Pick(r Ray, objects []*scene.Object3D) (*scene.Object3D, float32) {
	var best *scene.Object3D
	bestT := float32(gomath.MaxFloat32)
	for _, obj := range objects {
		if !obj.Mesh.Valid() {
			continue
		}
		box := TransformBounds(obj.Mesh.Bounds(), obj.Transform.WorldMatrix())
		if t, hit := r.IntersectAABB(box); hit && t < bestT {
			best, bestT = obj, t
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestT
}
