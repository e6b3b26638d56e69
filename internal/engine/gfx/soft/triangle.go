package soft

import (
	gomath "math"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/pkg/math"
)

// minW rejects vertices at or behind the eye. There is no near-plane clipping:
// such triangles are dropped whole.
const minW = 1e-6

// pipeline holds the state shared by every triangle of one draw command.
type pipeline struct {
	fb         *frameBuffer
	mvp        math.Mat4
	normal     math.Mat4
	state      gfx.DrawState
	albedo     gfx.Color
	lightColor gfx.Color
	lightDir   math.Vec3
}

// projected is a vertex after the perspective divide and viewport mapping.
type projected struct {
	ndcX, ndcY float32
	sx, sy     float32 // pixel space, y down
	z          float32 // window depth in [0, 1]
	invW       float32
	normal     math.Vec3 // world space, not normalized
}

func newPipeline(fb *frameBuffer, cmd gfx.DrawCommand) *pipeline {
	u := cmd.Uniforms
	return &pipeline{
		fb:         fb,
		mvp:        u.Projection.Mul(u.View).Mul(u.Model),
		normal:     u.Normal,
		state:      cmd.State,
		albedo:     u.Albedo,
		lightColor: u.LightColor,
		lightDir:   u.LightDir,
	}
}

func (p *pipeline) project(v gfx.Vertex) (projected, bool) {
	c := p.mvp.MulVec4(math.Vec4{v.Position.X, v.Position.Y, v.Position.Z, 1})
	if c[3] <= minW {
		return projected{}, false
	}
	inv := 1 / c[3]
	nx, ny, nz := c[0]*inv, c[1]*inv, c[2]*inv
	return projected{
		ndcX:   nx,
		ndcY:   ny,
		sx:     (nx + 1) * 0.5 * float32(p.fb.width),
		sy:     (1 - ny) * 0.5 * float32(p.fb.height),
		z:      (nz + 1) * 0.5,
		invW:   inv,
		normal: p.normal.TransformDirection(v.Normal),
	}, true
}

// triangle rasterizes one triangle with depth test and Lambert shading.
func (p *pipeline) triangle(a, b, c gfx.Vertex) {
	v0, ok0 := p.project(a)
	v1, ok1 := p.project(b)
	v2, ok2 := p.project(c)
	if !ok0 || !ok1 || !ok2 {
		return
	}

	// Signed area in NDC (+Y up): positive is counter-clockwise.
	ndcArea := (v1.ndcX-v0.ndcX)*(v2.ndcY-v0.ndcY) - (v2.ndcX-v0.ndcX)*(v1.ndcY-v0.ndcY)
	if ndcArea == 0 || p.state.Cull.Culls(ndcArea) {
		return
	}

	area := edge(v0, v1, v2.sx, v2.sy)
	if area == 0 {
		return
	}
	invArea := 1 / area

	w, h := p.fb.width, p.fb.height
	minX := clampInt(int(gomath.Floor(float64(min3(v0.sx, v1.sx, v2.sx)))), 0, w-1)
	maxX := clampInt(int(gomath.Ceil(float64(max3(v0.sx, v1.sx, v2.sx)))), 0, w-1)
	minY := clampInt(int(gomath.Floor(float64(min3(v0.sy, v1.sy, v2.sy)))), 0, h-1)
	maxY := clampInt(int(gomath.Ceil(float64(max3(v0.sy, v1.sy, v2.sy)))), 0, h-1)

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			b0 := edge(v1, v2, px, py) * invArea
			b1 := edge(v2, v0, px, py) * invArea
			b2 := edge(v0, v1, px, py) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*v0.z + b1*v1.z + b2*v2.z
			if z < 0 || z > 1 {
				continue
			}
			idx := y*w + x
			if !p.state.DepthTest.Pass(z, p.fb.depth[idx]) {
				continue
			}
			if p.state.DepthWrite {
				p.fb.depth[idx] = z
			}

			// Perspective-correct normal interpolation.
			q0, q1, q2 := b0*v0.invW, b1*v1.invW, b2*v2.invW
			s := q0 + q1 + q2
			n := v0.normal.Scale(q0 / s).Add(v1.normal.Scale(q1 / s)).Add(v2.normal.Scale(q2 / s))

			// A degenerate normal is left at zero and receives ambient light only.
			n, _ = n.Normalize()
			p.fb.color[idx] = gfx.Shade(p.albedo, p.lightColor, n, p.lightDir)
		}
	}
}

func edge(a, b projected, px, py float32) float32 {
	return (b.sx-a.sx)*(py-a.sy) - (b.sy-a.sy)*(px-a.sx)
}

func min3(a, b, c float32) float32 {
	return min(a, min(b, c))
}

func max3(a, b, c float32) float32 {
	return max(a, max(b, c))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
