// Package viewer turns configuration into a scene and renders it frame by frame.
package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/assets"
	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/model"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/internal/engine/shader"
	"github.com/Faultbox/boardview/internal/logger"
	"github.com/Faultbox/boardview/pkg/math"
)

// Built-in model sources.
const (
	BuiltinCube  = "builtin:cube"
	BuiltinPlane = "builtin:plane"
)

// ErrUnknownModel is returned for a model source with an unsupported extension.
var ErrUnknownModel = errors.New("unknown model format")

// LoadProgram compiles the configured shader pair, or the built-in Lambert
// program when no paths are set. The caller owns one reference.
func LoadProgram(dev gfx.Device, am *assets.Manager, cfg config.ShaderConfig) (*shader.Program, error) {
	if cfg.Vertex == "" && cfg.Fragment == "" {
		return shader.Lambert(dev)
	}
	return shader.LoadFiles(dev, am, cfg.Vertex, cfg.Fragment)
}

// LoadScene builds every configured object. Each material retains program,
// so the caller may release its own reference afterwards.
func LoadScene(dev gfx.Device, am *assets.Manager, cfg config.SceneConfig, program *shader.Program) (*scene.Scene, error) {
	sc := scene.New()
	for _, oc := range cfg.Objects {
		obj, err := loadObject(dev, am, oc, program)
		if err != nil {
			sc.Close()
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}
		if err := sc.Add(obj); err != nil {
			obj.Close()
			sc.Close()
			return nil, err
		}
		logger.Debug("object loaded",
			zap.String("name", oc.Name),
			zap.String("model", oc.Model),
			zap.Int("vertices", obj.Mesh.VertexCount()),
			zap.Int("groups", len(obj.Mesh.Ranges())),
		)
	}
	logger.Info("scene loaded", zap.Int("objects", sc.Len()))
	return sc, nil
}

func loadObject(dev gfx.Device, am *assets.Manager, oc config.ObjectConfig, program *shader.Program) (*scene.Object3D, error) {
	geom, err := loadGeometry(am, oc)
	if err != nil {
		return nil, err
	}
	if oc.SmoothNormals {
		model.SmoothNormals(geom.Vertices)
	}
	mesh, err := model.New(geom, dev)
	if err != nil {
		return nil, err
	}
	if err := mesh.SetMaterials(materials(oc, program)); err != nil {
		mesh.Close()
		return nil, err
	}

	obj := scene.NewObject3D(oc.Name, mesh)
	obj.Transform.SetScale(scaleOf(oc))
	obj.Transform.Translate(Vec(oc.Translate))
	return obj, nil
}

func loadGeometry(am *assets.Manager, oc config.ObjectConfig) (*model.Geometry, error) {
	source := oc.Model
	switch source {
	case BuiltinCube:
		return model.Cube(1), nil
	case BuiltinPlane:
		return model.Plane(1), nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".obj":
		data, err := am.Load(source)
		if err != nil {
			return nil, err
		}
		return model.LoadOBJ(data, oc.Object, oc.ObjectName)
	case ".gltf", ".glb":
		path, err := am.Resolve(source)
		if err != nil {
			return nil, err
		}
		return model.LoadGLTF(path, oc.Object)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, source)
	}
}

// materials returns the configured slots, or a single white one.
func materials(oc config.ObjectConfig, program *shader.Program) []model.Material {
	if len(oc.Materials) == 0 {
		return []model.Material{{Name: oc.Name, Albedo: gfx.ColorWhite, Program: program}}
	}
	mats := make([]model.Material, len(oc.Materials))
	for i, mc := range oc.Materials {
		mats[i] = model.Material{Name: mc.Name, Albedo: RGB(mc.Albedo), Program: program}
	}
	return mats
}

func scaleOf(oc config.ObjectConfig) math.Vec3 {
	if oc.Scale == [3]float32{} {
		return math.Fill(1)
	}
	return Vec(oc.Scale)
}

// Vec converts a config triple.
func Vec(v [3]float32) math.Vec3 {
	return math.V3(v[0], v[1], v[2])
}

// RGB converts a config color triple to an opaque color.
func RGB(c [3]float32) gfx.Color {
	return gfx.RGB(c[0], c[1], c[2])
}

// RGBA converts a config color quadruple.
func RGBA(c [4]float32) gfx.Color {
	return gfx.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
