// Package opengl implements gfx.Device on an OpenGL 4.1 core context.
//
// Every call must be made from the thread that owns the context.
package opengl

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/snapshot"
	"github.com/Faultbox/boardview/internal/logger"
)

type glMesh struct {
	vao, vbo, ebo uint32
	indices       int
}

// Device is an OpenGL gfx.Device.
type Device struct {
	meshes   map[gfx.BufferHandle]*glMesh
	programs map[gfx.ProgramHandle]*glProgram
	next     uint32

	swap          func()
	width, height int
}

var _ gfx.Device = (*Device)(nil)

// New initializes OpenGL on the current context. swap is called by Present
// to display the back buffer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(swap func(), width, height int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d := &Device{
		meshes:   make(map[gfx.BufferHandle]*glMesh),
		programs: make(map[gfx.ProgramHandle]*glProgram),
		swap:     swap,
	}
	gl.Enable(gl.DEPTH_TEST)
	d.Resize(width, height)
	return d, nil
}

// Resize sets the viewport to the drawable size.
func (d *Device) Resize(width, height int) {
	d.width, d.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (d *Device) Size() (int, int) {
	return d.width, d.height
}

// UploadMesh creates a VAO with interleaved vertex and index buffers.
func (d *Device) UploadMesh(vertices []gfx.Vertex, indices []uint32) (gfx.BufferHandle, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("upload: empty mesh")
	}
	m := &glMesh{indices: len(indices)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(gfx.Vertex{}))
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(gfx.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(gfx.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(gfx.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	if err := checkError("upload"); err != nil {
		m.delete()
		return 0, err
	}

	d.next++
	h := gfx.BufferHandle(d.next)
	d.meshes[h] = m
	return h, nil
}

// DeleteMesh frees the VAO and its buffers.
func (d *Device) DeleteMesh(h gfx.BufferHandle) {
	if m, ok := d.meshes[h]; ok {
		m.delete()
		delete(d.meshes, h)
	}
}

func (m *glMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// CompileProgram compiles, links and resolves the shading uniforms.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gfx.ProgramHandle, error) {
	p, err := linkProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	d.next++
	h := gfx.ProgramHandle(d.next)
	d.programs[h] = p
	return h, nil
}

// DeleteProgram frees the program.
func (d *Device) DeleteProgram(h gfx.ProgramHandle) {
	if p, ok := d.programs[h]; ok {
		p.delete()
		delete(d.programs, h)
	}
}

// Clear clears color to c and depth to 1.
func (d *Device) Clear(c gfx.Color) error {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.ClearDepth(1)
	// Depth writes must be on for the depth clear to take effect.
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return checkError("clear")
}

// Draw applies the command's state and uniforms and draws its index range.
func (d *Device) Draw(cmd gfx.DrawCommand) error {
	m, ok := d.meshes[cmd.Buffers]
	if !ok {
		return fmt.Errorf("buffer %d: %w", cmd.Buffers, gfx.ErrInvalidBuffer)
	}
	p, ok := d.programs[cmd.Program]
	if !ok {
		return fmt.Errorf("program %d: %w", cmd.Program, gfx.ErrInvalidProgram)
	}
	if cmd.First < 0 || cmd.Count < 0 || cmd.First+cmd.Count > m.indices {
		return fmt.Errorf("range [%d, %d) outside %d indices", cmd.First, cmd.First+cmd.Count, m.indices)
	}

	applyState(cmd.State)

	p.use(cmd.Uniforms)

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.Count), gl.UNSIGNED_INT, uintptr(cmd.First*4))
	gl.BindVertexArray(0)

	return checkError("draw")
}

// Present swaps the back buffer onto the screen.
func (d *Device) Present() error {
	if d.swap != nil {
		d.swap()
	}
	return checkError("present")
}

// ReadPixels reads the current color buffer top-down.
func (d *Device) ReadPixels() *image.NRGBA {
	buf := make([]byte, d.width*d.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(d.width), int32(d.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return snapshot.FromBottomUpRGBA(buf, d.width, d.height)
}

// Close deletes every remaining mesh and program.
func (d *Device) Close() {
	for h := range d.meshes {
		d.DeleteMesh(h)
	}
	for h := range d.programs {
		d.DeleteProgram(h)
	}
	logger.Info("OpenGL device closed")
}

func checkError(op string) error {
	switch code := gl.GetError(); code {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("%s: %w: out of memory", op, gfx.ErrDeviceLost)
	default:
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
}
