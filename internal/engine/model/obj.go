package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/logger"
	"github.com/Faultbox/boardview/pkg/formats"
	"github.com/Faultbox/boardview/pkg/math"
)

// BuildOBJ converts object index of a parsed OBJ file into geometry.
// Face corners with identical references share one vertex. When any corner
// lacks a normal, normals are computed from the faces.
func BuildOBJ(file *formats.OBJ, object int) (*Geometry, error) {
	if object < 0 || object >= len(file.Objects) {
		return nil, fmt.Errorf("%w: OBJ object %d of %d", ErrInvalidGeometry, object, len(file.Objects))
	}
	o := &file.Objects[object]

	geom := &Geometry{}
	seen := make(map[formats.OBJIndex]uint32)
	missingNormals := false

	for _, tri := range o.Triangles {
		for _, c := range tri {
			if idx, ok := seen[c]; ok {
				geom.Indices = append(geom.Indices, idx)
				continue
			}
			p := file.Positions[c.Position]
			v := gfx.Vertex{Position: math.V3(p[0], p[1], p[2])}
			if c.Normal >= 0 {
				n := file.Normals[c.Normal]
				v.Normal = math.V3(n[0], n[1], n[2])
			} else {
				missingNormals = true
			}
			if c.TexCoord >= 0 {
				t := file.TexCoords[c.TexCoord]
				v.TexCoord = math.Vec2{X: t[0], Y: t[1]}
			}
			idx := uint32(len(geom.Vertices))
			seen[c] = idx
			geom.Vertices = append(geom.Vertices, v)
			geom.Indices = append(geom.Indices, idx)
		}
	}

	for _, g := range o.Groups {
		name := g.Name
		if g.Material != "" {
			name = g.Material
		}
		geom.Groups = append(geom.Groups, Group{
			Name:       name,
			StartIndex: g.Start * 3,
			IndexCount: g.Count * 3,
		})
	}

	if missingNormals {
		ComputeNormals(geom)
	}
	return geom, nil
}

// LoadOBJ parses OBJ data and builds geometry for one object. A non-empty
// name selects the object by its "o" name instead of by index.
func LoadOBJ(data []byte, object int, name string) (*Geometry, error) {
	file, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, err
	}
	if name != "" {
		if object = file.ObjectIndex(name); object < 0 {
			return nil, fmt.Errorf("%w: no OBJ object named %q", ErrInvalidGeometry, name)
		}
	}
	logger.Debug("obj parsed",
		zap.Int("objects", len(file.Objects)),
		zap.Int("triangles", file.TriangleCount()),
		zap.Int("selected", object),
	)
	return BuildOBJ(file, object)
}
