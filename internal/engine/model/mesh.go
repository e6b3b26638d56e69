package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/logger"
)

// Mesh is uploaded geometry plus the materials that shade it.
// The geometry is fixed at construction; materials may be replaced.
type Mesh struct {
	dev       gfx.Device
	buf       gfx.BufferHandle
	groups    []Group
	materials []Material
	bounds    Bounds
	vertexCnt int
	indexCnt  int
	closed    bool
}

// New validates geom and uploads it to dev once.
func New(geom *Geometry, dev gfx.Device) (*Mesh, error) {
	if geom == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidGeometry)
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	buf, err := dev.UploadMesh(geom.Vertices, geom.Indices)
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	return &Mesh{
		dev:       dev,
		buf:       buf,
		groups:    geom.NaturalGroups(),
		bounds:    ComputeBounds(geom.Vertices),
		vertexCnt: len(geom.Vertices),
		indexCnt:  len(geom.Indices),
	}, nil
}

// Materials returns a copy of the material list.
func (m *Mesh) Materials() []Material {
	return append([]Material(nil), m.materials...)
}

// SetMaterials replaces the whole material list. Programs of the new list are
// retained before those of the old list are released, so a program present in
// both survives.
func (m *Mesh) SetMaterials(mats []Material) error {
	if m.closed {
		return fmt.Errorf("set materials: %w", gfx.ErrInvalidBuffer)
	}
	if len(mats) > len(m.groups) {
		return fmt.Errorf("%w: %d materials for %d groups", ErrTooManyMaterials, len(mats), len(m.groups))
	}

	for i, mat := range mats {
		if mat.Program == nil {
			continue
		}
		if err := mat.Program.Retain(); err != nil {
			for _, done := range mats[:i] {
				if done.Program != nil {
					done.Program.Release()
				}
			}
			return fmt.Errorf("material %d (%q): %w", i, mat.Name, err)
		}
	}
	releasePrograms(m.materials)
	m.materials = append([]Material(nil), mats...)
	return nil
}

// Ranges returns the natural index groups of the geometry.
func (m *Mesh) Ranges() []Group {
	return append([]Group(nil), m.groups...)
}

// DrawRanges pairs materials with index ranges. Material i shades group i;
// the last material also shades every group after it as one merged range.
// No materials means no ranges.
func (m *Mesh) DrawRanges() []DrawRange {
	if len(m.materials) == 0 {
		return nil
	}
	ranges := make([]DrawRange, len(m.materials))
	last := len(m.materials) - 1
	for i, mat := range m.materials {
		g := m.groups[i]
		ranges[i] = DrawRange{Material: mat, First: g.StartIndex, Count: g.IndexCount}
	}
	tail := m.groups[len(m.groups)-1]
	ranges[last].Count = tail.StartIndex + tail.IndexCount - ranges[last].First
	return ranges
}

// Buffers returns the device buffer handle.
func (m *Mesh) Buffers() gfx.BufferHandle {
	return m.buf
}

// Valid reports whether the mesh still owns its device buffers.
func (m *Mesh) Valid() bool {
	return m != nil && !m.closed
}

// Bounds returns the bounding box of the geometry in model space.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// VertexCount returns the number of uploaded vertices.
func (m *Mesh) VertexCount() int {
	return m.vertexCnt
}

// IndexCount returns the number of uploaded indices.
func (m *Mesh) IndexCount() int {
	return m.indexCnt
}

// Close frees the device buffers and releases material programs.
// Calling it again does nothing.
func (m *Mesh) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.dev.DeleteMesh(m.buf)
	releasePrograms(m.materials)
	m.materials = nil
	logger.Debug("mesh closed", zap.Uint32("buffer", uint32(m.buf)))
}

func releasePrograms(mats []Material) {
	for _, mat := range mats {
		if mat.Program != nil {
			mat.Program.Release()
		}
	}
}
