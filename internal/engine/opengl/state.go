package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/boardview/internal/engine/gfx"
)

func depthFunc(t gfx.DepthTest) uint32 {
	switch t {
	case gfx.DepthAlways:
		return gl.ALWAYS
	case gfx.DepthNever:
		return gl.NEVER
	case gfx.DepthIfLessOrEqual:
		return gl.LEQUAL
	case gfx.DepthIfEqual:
		return gl.EQUAL
	case gfx.DepthIfGreater:
		return gl.GREATER
	case gfx.DepthIfGreaterOrEqual:
		return gl.GEQUAL
	case gfx.DepthIfNotEqual:
		return gl.NOTEQUAL
	default:
		return gl.LESS
	}
}

// applyState sets depth and culling. Front faces are counter-clockwise.
func applyState(s gfx.DrawState) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(depthFunc(s.DepthTest))
	gl.DepthMask(s.DepthWrite)

	switch s.Cull {
	case gfx.CullClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case gfx.CullCounterClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}
