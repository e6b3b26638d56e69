package model

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/pkg/math"
)

// LoadGLTF opens a .gltf or .glb file and builds geometry for one mesh.
func LoadGLTF(path string, meshIndex int) (*Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return FromGLTF(doc, meshIndex)
}

// FromGLTF builds geometry from mesh meshIndex of doc. Each triangle
// primitive becomes one group, so each can carry its own material.
// Non-triangle primitives are skipped.
func FromGLTF(doc *gltf.Document, meshIndex int) (*Geometry, error) {
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("%w: gltf mesh %d of %d", ErrInvalidGeometry, meshIndex, len(doc.Meshes))
	}
	gm := doc.Meshes[meshIndex]

	geom := &Geometry{}
	missingNormals := false
	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		start := len(geom.Indices)
		hasNormals, err := appendPrimitive(geom, doc, prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %d prim %d: %w", meshIndex, pi, err)
		}
		if len(geom.Indices) == start {
			continue
		}
		missingNormals = missingNormals || !hasNormals

		name := fmt.Sprintf("%s_p%d", gm.Name, pi)
		if prim.Material != nil && *prim.Material < len(doc.Materials) && doc.Materials[*prim.Material].Name != "" {
			name = doc.Materials[*prim.Material].Name
		}
		geom.Groups = append(geom.Groups, Group{
			Name:       name,
			StartIndex: start,
			IndexCount: len(geom.Indices) - start,
		})
	}
	if len(geom.Groups) == 0 {
		return nil, fmt.Errorf("%w: gltf mesh %d has no triangle primitives", ErrInvalidGeometry, meshIndex)
	}
	if missingNormals {
		ComputeNormals(geom)
	}
	return geom, nil
}

// appendPrimitive adds one primitive's vertices and indices to geom.
// It reports whether the primitive carried normals.
func appendPrimitive(geom *Geometry, doc *gltf.Document, prim *gltf.Primitive) (bool, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return false, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(len(geom.Vertices))
	for i, p := range positions {
		v := gfx.Vertex{Position: math.V3(p[0], p[1], p[2])}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.V3(n[0], n[1], n[2])
		}
		if i < len(uvs) {
			v.TexCoord = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		geom.Vertices = append(geom.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			geom.Indices = append(geom.Indices, base+uint32(i))
		}
	} else {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range indices {
			geom.Indices = append(geom.Indices, base+idx)
		}
	}
	return len(normals) == len(positions), nil
}
