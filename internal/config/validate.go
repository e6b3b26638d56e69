package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/snapshot"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks sizes and parses every enum string.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		add("graphics size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}

	switch c.Camera.Mode {
	case CameraTrack, CameraOrbit:
	default:
		add("camera mode %q", c.Camera.Mode)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		add("camera fov_degrees %v", c.Camera.FOVDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}

	if sun := c.Light.Sun; sun != nil {
		if sun.Latitude < -90 || sun.Latitude > 90 {
			add("light sun latitude %v", sun.Latitude)
		}
	} else if c.Light.Direction == [3]float32{} {
		add("light direction is zero")
	}

	if _, err := c.Render.DepthTestMode(); err != nil {
		add("render depth_test: %v", err)
	}
	if _, err := c.Render.CullMode(); err != nil {
		add("render cull: %v", err)
	}

	names := make(map[string]bool, len(c.Scene.Objects))
	for i, obj := range c.Scene.Objects {
		switch {
		case obj.Name == "":
			add("scene object %d has no name", i)
		case names[obj.Name]:
			add("scene object %q defined twice", obj.Name)
		}
		names[obj.Name] = true
		if obj.Model == "" {
			add("scene object %q has no model", obj.Name)
		}
		if obj.Object < 0 {
			add("scene object %q index %d", obj.Name, obj.Object)
		}
		if obj.ObjectName != "" && strings.ToLower(filepath.Ext(obj.Model)) != ".obj" {
			add("scene object %q: object_name needs an .obj model", obj.Name)
		}
	}
	if c.Camera.Target != "" && !names[c.Camera.Target] {
		add("camera target %q is not a scene object", c.Camera.Target)
	}
	if (c.Scene.Shaders.Vertex == "") != (c.Scene.Shaders.Fragment == "") {
		add("shaders need both vertex and fragment paths")
	}

	if _, err := snapshot.ParseFormat(c.Snapshot.Format); err != nil {
		add("snapshot format: %v", err)
	}
	if c.Snapshot.Width < 0 || c.Snapshot.Height < 0 {
		add("snapshot size %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}
	if c.Snapshot.Frames < 0 || c.Snapshot.Supersample < 0 {
		add("snapshot frames=%d supersample=%d", c.Snapshot.Frames, c.Snapshot.Supersample)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		add("logging level %q", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// DepthTestMode parses DepthTest.
func (r RenderConfig) DepthTestMode() (gfx.DepthTest, error) {
	return gfx.ParseDepthTest(r.DepthTest)
}

// CullMode parses Cull.
func (r RenderConfig) CullMode() (gfx.CullMode, error) {
	return gfx.ParseCullMode(r.Cull)
}

// DrawState returns the parsed draw state. Call Validate first.
func (r RenderConfig) DrawState() (gfx.DrawState, error) {
	depth, err := r.DepthTestMode()
	if err != nil {
		return gfx.DrawState{}, err
	}
	cull, err := r.CullMode()
	if err != nil {
		return gfx.DrawState{}, err
	}
	return gfx.DrawState{DepthTest: depth, DepthWrite: r.DepthWrite, Cull: cull}, nil
}
