package model

import (
	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/pkg/math"
)

// cubeFaces lists each face normal with one in-plane axis; the other axis is normal x u.
var cubeFaces = []struct {
	name   string
	normal math.Vec3
	u      math.Vec3
}{
	{"right", math.V3(1, 0, 0), math.V3(0, 0, -1)},
	{"left", math.V3(-1, 0, 0), math.V3(0, 0, 1)},
	{"top", math.V3(0, 1, 0), math.V3(1, 0, 0)},
	{"bottom", math.V3(0, -1, 0), math.V3(1, 0, 0)},
	{"front", math.V3(0, 0, 1), math.V3(1, 0, 0)},
	{"back", math.V3(0, 0, -1), math.V3(-1, 0, 0)},
}

// Cube returns an axis-aligned cube centered on the origin with one group per face.
// Faces wind counter-clockwise seen from outside.
func Cube(size float32) *Geometry {
	h := size / 2
	geom := &Geometry{}
	for _, f := range cubeFaces {
		v := f.normal.Cross(f.u)
		center := f.normal.Scale(h)
		u := f.u.Scale(h)
		w := v.Scale(h)
		base := uint32(len(geom.Vertices))
		corners := [4]math.Vec3{
			center.Sub(u).Sub(w),
			center.Add(u).Sub(w),
			center.Add(u).Add(w),
			center.Sub(u).Add(w),
		}
		uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		for i, c := range corners {
			geom.Vertices = append(geom.Vertices, gfx.Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
		}
		geom.Groups = append(geom.Groups, Group{Name: f.name, StartIndex: len(geom.Indices), IndexCount: 6})
		geom.Indices = append(geom.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return geom
}

// Plane returns a square in the XZ plane facing +Y, centered on the origin.
func Plane(size float32) *Geometry {
	h := size / 2
	up := math.V3(0, 1, 0)
	return &Geometry{
		Vertices: []gfx.Vertex{
			{Position: math.V3(-h, 0, -h), Normal: up, TexCoord: math.Vec2{X: 0, Y: 0}},
			{Position: math.V3(-h, 0, h), Normal: up, TexCoord: math.Vec2{X: 0, Y: 1}},
			{Position: math.V3(h, 0, h), Normal: up, TexCoord: math.Vec2{X: 1, Y: 1}},
			{Position: math.V3(h, 0, -h), Normal: up, TexCoord: math.Vec2{X: 1, Y: 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
