package viewer

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/camera"
	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/lighting"
	"github.com/Faultbox/boardview/internal/engine/renderer"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/pkg/math"
)

// NewCamera builds the fixed camera described by cfg.
func NewCamera(cfg config.CameraConfig) *camera.Camera {
	cam := camera.New(Vec(cfg.Eye), cfg.FOVDegrees*gomath.Pi/180, cfg.Near, cfg.Far)
	if cfg.Up != [3]float32{} {
		cam.Up = Vec(cfg.Up)
	}
	return cam
}

// Target returns the position of the named object, or the origin when the
// name is empty or unknown.
func Target(sc *scene.Scene, name string) math.Vec3 {
	if obj := sc.Find(name); obj != nil {
		return obj.Transform.Position()
	}
	return math.Vec3{}
}

// Light builds the directional light from cfg, preferring the sun angles.
func Light(cfg config.LightConfig) (lighting.Directional, error) {
	dir := Vec(cfg.Direction)
	if cfg.Sun != nil {
		dir = lighting.SunDirection(cfg.Sun.Longitude, cfg.Sun.Latitude)
	}
	return lighting.NewDirectional(dir, RGB(cfg.Color))
}

// BuildFrame returns the per-frame state for a camera at cam looking at target
// through a width x height viewport.
func BuildFrame(cfg *config.Config, cam *camera.Camera, target math.Vec3, width, height int) (renderer.Frame, error) {
	view, err := cam.LookAt(target)
	if err != nil {
		return renderer.Frame{}, fmt.Errorf("view: %w", err)
	}
	proj, err := cam.Projection(width, height)
	if err != nil {
		return renderer.Frame{}, fmt.Errorf("projection: %w", err)
	}
	state, err := cfg.Render.DrawState()
	if err != nil {
		return renderer.Frame{}, err
	}
	light, err := Light(cfg.Light)
	if err != nil {
		return renderer.Frame{}, err
	}
	return renderer.Frame{
		Background: RGBA(cfg.Render.Background),
		LightDir:   light.Direction,
		LightColor: light.Color,
		View:       view,
		Projection: proj,
		State:      state,
	}, nil
}

// RenderFrame clears to clear, draws every scene object in order and shows
// the frame on a fresh Renderer.
func RenderFrame(dev gfx.Device, frame renderer.Frame, clear gfx.Color, sc *scene.Scene) (renderer.Stats, error) {
	r, err := renderer.New(dev, frame)
	if err != nil {
		return renderer.Stats{}, err
	}
	if err := r.Clear(clear); err != nil {
		return r.Stats(), err
	}
	if err := r.DrawAll(sc.Objects()); err != nil {
		return r.Stats(), err
	}
	if err := r.Show(); err != nil {
		return r.Stats(), err
	}
	return r.Stats(), nil
}
