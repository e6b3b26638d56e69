// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"

	"github.com/Faultbox/boardview/internal/engine/gfx"
)

// Mesh is the data captured by an upload.
type Mesh struct {
	Vertices []gfx.Vertex
	Indices  []uint32
}

// Program is the data captured by a compile.
type Program struct {
	Vertex   string
	Fragment string
}

// Device records every call. Set the Fail* fields to inject errors.
type Device struct {
	Meshes   map[gfx.BufferHandle]Mesh
	Programs map[gfx.ProgramHandle]Program

	Clears   []gfx.Color
	Draws    []gfx.DrawCommand
	Presents int

	// Ops lists calls in order, e.g. "upload", "clear", "draw", "present".
	Ops []string

	DeletedMeshes   []gfx.BufferHandle
	DeletedPrograms []gfx.ProgramHandle

	FailUpload  error
	FailCompile error
	FailDraw    error
	FailPresent error

	next uint32
}

var _ gfx.Device = (*Device)(nil)

// New creates an empty recording device.
func New() *Device {
	return &Device{
		Meshes:   make(map[gfx.BufferHandle]Mesh),
		Programs: make(map[gfx.ProgramHandle]Program),
	}
}

// UploadMesh stores copies of the data.
func (d *Device) UploadMesh(vertices []gfx.Vertex, indices []uint32) (gfx.BufferHandle, error) {
	d.Ops = append(d.Ops, "upload")
	if d.FailUpload != nil {
		return 0, d.FailUpload
	}
	d.next++
	h := gfx.BufferHandle(d.next)
	d.Meshes[h] = Mesh{
		Vertices: append([]gfx.Vertex(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	return h, nil
}

// DeleteMesh forgets the mesh.
func (d *Device) DeleteMesh(h gfx.BufferHandle) {
	d.Ops = append(d.Ops, "delete_mesh")
	d.DeletedMeshes = append(d.DeletedMeshes, h)
	delete(d.Meshes, h)
}

// CompileProgram stores the sources.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gfx.ProgramHandle, error) {
	d.Ops = append(d.Ops, "compile")
	if d.FailCompile != nil {
		return 0, d.FailCompile
	}
	d.next++
	h := gfx.ProgramHandle(d.next)
	d.Programs[h] = Program{Vertex: vertexSrc, Fragment: fragmentSrc}
	return h, nil
}

// DeleteProgram forgets the program.
func (d *Device) DeleteProgram(h gfx.ProgramHandle) {
	d.Ops = append(d.Ops, "delete_program")
	d.DeletedPrograms = append(d.DeletedPrograms, h)
	delete(d.Programs, h)
}

// Clear records the color.
func (d *Device) Clear(c gfx.Color) error {
	d.Ops = append(d.Ops, "clear")
	d.Clears = append(d.Clears, c)
	return nil
}

// Draw validates handles and records the command.
func (d *Device) Draw(cmd gfx.DrawCommand) error {
	d.Ops = append(d.Ops, "draw")
	if d.FailDraw != nil {
		return d.FailDraw
	}
	m, ok := d.Meshes[cmd.Buffers]
	if !ok {
		return fmt.Errorf("draw buffer %d: %w", cmd.Buffers, gfx.ErrInvalidBuffer)
	}
	if _, ok := d.Programs[cmd.Program]; !ok {
		return fmt.Errorf("draw program %d: %w", cmd.Program, gfx.ErrInvalidProgram)
	}
	if cmd.First < 0 || cmd.Count < 0 || cmd.First+cmd.Count > len(m.Indices) {
		return fmt.Errorf("draw range [%d, %d) outside %d indices", cmd.First, cmd.First+cmd.Count, len(m.Indices))
	}
	d.Draws = append(d.Draws, cmd)
	return nil
}

// Present counts the call.
func (d *Device) Present() error {
	d.Ops = append(d.Ops, "present")
	if d.FailPresent != nil {
		return d.FailPresent
	}
	d.Presents++
	return nil
}
