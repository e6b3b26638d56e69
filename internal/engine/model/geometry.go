package model

import (
	"fmt"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/pkg/math"
)

// Validate checks the geometry is a well-formed triangle list with
// consecutive, covering groups.
func (g *Geometry) Validate() error {
	if len(g.Vertices) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidGeometry)
	}
	if len(g.Indices) == 0 {
		return fmt.Errorf("%w: no indices", ErrInvalidGeometry)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidGeometry, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			return fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidGeometry, idx, i, len(g.Vertices))
		}
	}

	next := 0
	for i, grp := range g.Groups {
		if grp.StartIndex != next {
			return fmt.Errorf("%w: group %d (%q) starts at %d, want %d", ErrInvalidGeometry, i, grp.Name, grp.StartIndex, next)
		}
		if grp.IndexCount <= 0 || grp.IndexCount%3 != 0 {
			return fmt.Errorf("%w: group %d (%q) has %d indices", ErrInvalidGeometry, i, grp.Name, grp.IndexCount)
		}
		next += grp.IndexCount
	}
	if len(g.Groups) > 0 && next != len(g.Indices) {
		return fmt.Errorf("%w: groups cover %d of %d indices", ErrInvalidGeometry, next, len(g.Indices))
	}
	return nil
}

// NaturalGroups returns the groups, or one implicit group when none are set.
func (g *Geometry) NaturalGroups() []Group {
	if len(g.Groups) == 0 {
		return []Group{{StartIndex: 0, IndexCount: len(g.Indices)}}
	}
	return append([]Group(nil), g.Groups...)
}

// ComputeBounds returns the bounding box of the vertex positions.
func ComputeBounds(vertices []gfx.Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		p := v.Position
		b.Min = math.V3(min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z))
		b.Max = math.V3(max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z))
	}
	return b
}

// ComputeNormals replaces every vertex normal with the area-weighted sum of
// the face normals of the triangles using it. Counter-clockwise triangles
// face outward.
func ComputeNormals(g *Geometry) {
	sums := make([]math.Vec3, len(g.Vertices))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		p0 := g.Vertices[i0].Position
		e1 := g.Vertices[i1].Position.Sub(p0)
		e2 := g.Vertices[i2].Position.Sub(p0)
		n := e1.Cross(e2)
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i := range g.Vertices {
		n, err := sums[i].Normalize()
		if err != nil {
			// Only degenerate triangles touch this vertex.
			n = math.V3(0, 1, 0)
		}
		g.Vertices[i].Normal = n
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models whose vertices are split per face.
func SmoothNormals(vertices []gfx.Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := [3]int32{int32(p.X / epsilon), int32(p.Y / epsilon), int32(p.Z / epsilon)}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		avg, err := sum.Normalize()
		if err != nil {
			continue
		}
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
