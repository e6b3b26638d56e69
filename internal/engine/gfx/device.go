// Package gfx defines the contract between the renderer and a low-level
// graphics backend, plus the value types that cross it.
package gfx

import (
	"errors"

	"github.com/Faultbox/boardview/pkg/math"
)

// Backend errors.
var (
	ErrInvalidBuffer  = errors.New("invalid buffer handle")
	ErrInvalidProgram = errors.New("invalid program handle")
	ErrDeviceLost     = errors.New("graphics device lost")
)

// AmbientLight is the ambient term of the shared Lambert shading model:
// rgb = albedo * lightColor * (AmbientLight + (1-AmbientLight) * max(dot(n, l), 0)).
const AmbientLight = 0.2

// BufferHandle names uploaded vertex/index data. Zero is never valid.
type BufferHandle uint32

// ProgramHandle names a compiled shader program. Zero is never valid.
type ProgramHandle uint32

// Vertex is the interleaved vertex layout: position, normal, texture coordinate.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Uniforms are the per-draw shader inputs.
type Uniforms struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Normal     math.Mat4 // inverse-transpose of Model
	Albedo     Color
	LightDir   math.Vec3 // unit vector pointing towards the light
	LightColor Color
}

// DrawCommand draws Count indices starting at First from Buffers.
type DrawCommand struct {
	Buffers  BufferHandle
	Program  ProgramHandle
	First    int
	Count    int
	State    DrawState
	Uniforms Uniforms
}

// Device executes GPU work. Implementations are used from a single thread.
type Device interface {
	UploadMesh(vertices []Vertex, indices []uint32) (BufferHandle, error)
	DeleteMesh(h BufferHandle)
	CompileProgram(vertexSrc, fragmentSrc string) (ProgramHandle, error)
	DeleteProgram(h ProgramHandle)
	Clear(c Color) error
	Draw(cmd DrawCommand) error
	Present() error
}
