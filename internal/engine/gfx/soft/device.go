// Package soft implements gfx.Device with a CPU rasterizer.
//
// It renders the same Lambert shading as the OpenGL backend into an in-memory
// framebuffer, which makes frames inspectable in tests and renderable without
// a window.
package soft

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/boardview/internal/engine/gfx"
)

// ErrBadSize is returned for a non-positive framebuffer size.
var ErrBadSize = errors.New("framebuffer size must be positive")

type mesh struct {
	vertices []gfx.Vertex
	indices  []uint32
}

// Device is a software gfx.Device.
type Device struct {
	fb       *frameBuffer
	meshes   map[gfx.BufferHandle]*mesh
	programs map[gfx.ProgramHandle]struct{}
	next     uint32

	frame    *image.NRGBA
	presents int
	lost     bool
}

var _ gfx.Device = (*Device)(nil)

// New creates a device with a width x height framebuffer cleared to black.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrBadSize)
	}
	return &Device{
		fb:       newFrameBuffer(width, height),
		meshes:   make(map[gfx.BufferHandle]*mesh),
		programs: make(map[gfx.ProgramHandle]struct{}),
	}, nil
}

// Size returns the framebuffer dimensions.
func (d *Device) Size() (int, int) {
	return d.fb.width, d.fb.height
}

// Resize reallocates the framebuffer. Contents are reset to black.
func (d *Device) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrBadSize)
	}
	d.fb = newFrameBuffer(width, height)
	return nil
}

// Lose simulates a lost context: every later Clear, Draw and Present fails.
func (d *Device) Lose() {
	d.lost = true
}

// UploadMesh copies the geometry into device memory.
func (d *Device) UploadMesh(vertices []gfx.Vertex, indices []uint32) (gfx.BufferHandle, error) {
	if d.lost {
		return 0, gfx.ErrDeviceLost
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return 0, fmt.Errorf("index %d out of range for %d vertices", idx, len(vertices))
		}
	}
	d.next++
	h := gfx.BufferHandle(d.next)
	d.meshes[h] = &mesh{
		vertices: append([]gfx.Vertex(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}
	return h, nil
}

// DeleteMesh frees the geometry.
func (d *Device) DeleteMesh(h gfx.BufferHandle) {
	delete(d.meshes, h)
}

// CompileProgram accepts any pair of non-empty sources; shading is fixed.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gfx.ProgramHandle, error) {
	if vertexSrc == "" {
		return 0, errors.New("vertex shader: empty source")
	}
	if fragmentSrc == "" {
		return 0, errors.New("fragment shader: empty source")
	}
	d.next++
	h := gfx.ProgramHandle(d.next)
	d.programs[h] = struct{}{}
	return h, nil
}

// DeleteProgram frees the program.
func (d *Device) DeleteProgram(h gfx.ProgramHandle) {
	delete(d.programs, h)
}

// Clear sets every pixel to c and every depth to far.
func (d *Device) Clear(c gfx.Color) error {
	if d.lost {
		return gfx.ErrDeviceLost
	}
	d.fb.clear(c)
	return nil
}

// Draw rasterizes the indexed triangles of cmd.
func (d *Device) Draw(cmd gfx.DrawCommand) error {
	if d.lost {
		return gfx.ErrDeviceLost
	}
	m, ok := d.meshes[cmd.Buffers]
	if !ok {
		return fmt.Errorf("buffer %d: %w", cmd.Buffers, gfx.ErrInvalidBuffer)
	}
	if _, ok := d.programs[cmd.Program]; !ok {
		return fmt.Errorf("program %d: %w", cmd.Program, gfx.ErrInvalidProgram)
	}
	if cmd.First < 0 || cmd.Count < 0 || cmd.First+cmd.Count > len(m.indices) {
		return fmt.Errorf("range [%d, %d) outside %d indices", cmd.First, cmd.First+cmd.Count, len(m.indices))
	}

	p := newPipeline(d.fb, cmd)
	end := cmd.First + cmd.Count - cmd.Count%3
	for i := cmd.First; i < end; i += 3 {
		p.triangle(
			m.vertices[m.indices[i]],
			m.vertices[m.indices[i+1]],
			m.vertices[m.indices[i+2]],
		)
	}
	return nil
}

// Present snapshots the framebuffer as the displayed frame.
func (d *Device) Present() error {
	if d.lost {
		return gfx.ErrDeviceLost
	}
	d.frame = d.fb.image()
	d.presents++
	return nil
}

// LastFrame returns the most recently presented frame, or nil.
func (d *Device) LastFrame() *image.NRGBA {
	return d.frame
}

// Presents returns how many frames have been presented.
func (d *Device) Presents() int {
	return d.presents
}
