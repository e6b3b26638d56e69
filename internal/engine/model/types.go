// Package model builds renderable meshes from parsed geometry and manages
// their device buffers and materials.
package model

import (
	"errors"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/shader"
	"github.com/Faultbox/boardview/pkg/math"
)

var (
	// ErrInvalidGeometry is wrapped by every geometry validation failure.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrTooManyMaterials is returned when a mesh gets more materials than it has groups.
	ErrTooManyMaterials = errors.New("more materials than index groups")
)

// Group is a named consecutive run of indices. Offsets are in indices, not triangles.
type Group struct {
	Name       string
	StartIndex int
	IndexCount int
}

// Geometry is triangulated vertex data as delivered by a model parser.
// An empty Groups slice means one implicit group covering every index.
type Geometry struct {
	Vertices []gfx.Vertex
	Indices  []uint32
	Groups   []Group
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Material is a surface color paired with the program that shades it.
// Several materials may share one Program.
type Material struct {
	Name    string
	Albedo  gfx.Color
	Program *shader.Program
}

// DrawRange is one draw call's worth of a mesh: an index range and its material.
type DrawRange struct {
	Material Material
	First    int
	Count    int
}
