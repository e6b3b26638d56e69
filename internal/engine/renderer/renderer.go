// Package renderer draws a scene for one frame through a gfx.Device.
//
// A Renderer is built fresh every frame, accepts Clear and Draw calls, and is
// finished by exactly one Show. Nothing is sorted or batched: objects are
// drawn in call order.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/internal/logger"
	"github.com/Faultbox/boardview/pkg/math"
)

// Renderer errors.
var (
	ErrFrameShown  = errors.New("frame already shown")
	ErrNilObject   = errors.New("nil object")
	ErrInvalidMesh = errors.New("object has no valid mesh")
)

// Frame is the per-frame state shared by every draw.
type Frame struct {
	Background gfx.Color
	// LightDir points towards the light; it is normalized by New.
	LightDir   math.Vec3
	LightColor gfx.Color
	View       math.Mat4
	Projection math.Mat4
	State      gfx.DrawState
}

// Stats counts the work submitted during a frame.
type Stats struct {
	Clears    int
	DrawCalls int
	Objects   int
}

// Renderer issues the draw calls of a single frame.
type Renderer struct {
	dev   gfx.Device
	frame Frame
	log   *zap.Logger
	stats Stats
	shown bool
}

// New starts a frame on dev.
func New(dev gfx.Device, f Frame) (*Renderer, error) {
	dir, err := f.LightDir.Normalize()
	if err != nil {
		return nil, fmt.Errorf("light direction: %w", err)
	}
	f.LightDir = dir
	return &Renderer{
		dev:   dev,
		frame: f,
		log:   logger.Named("renderer"),
	}, nil
}

// Clear fills the color buffer with c and resets depth to the far plane.
func (r *Renderer) Clear(c gfx.Color) error {
	if r.shown {
		return ErrFrameShown
	}
	if err := r.dev.Clear(c); err != nil {
		return r.fail("clear", fmt.Errorf("clear: %w", err))
	}
	r.stats.Clears++
	return nil
}

// ClearBackground clears to the frame's background color.
func (r *Renderer) ClearBackground() error {
	return r.Clear(r.frame.Background)
}

// Draw submits one draw command per material range of obj's mesh.
// Every command shares the object's world matrix and the frame's camera,
// light and draw state.
func (r *Renderer) Draw(obj *scene.Object3D) error {
	if r.shown {
		return ErrFrameShown
	}
	if obj == nil {
		return r.fail("draw", ErrNilObject)
	}
	if !obj.Mesh.Valid() {
		return r.fail("draw", fmt.Errorf("%q: %w: %w", obj.Name, ErrInvalidMesh, gfx.ErrInvalidBuffer))
	}

	ranges := obj.Mesh.DrawRanges()
	if len(ranges) == 0 {
		r.log.Debug("object has no materials", zap.String("object", obj.Name))
		return nil
	}

	world := obj.Transform.WorldMatrix()
	normal, err := world.NormalMatrix()
	if err != nil {
		// A collapsed axis has no well-defined normals; shade with the world matrix.
		r.log.Debug("singular world matrix", zap.String("object", obj.Name))
		normal = world
	}
	for i, rng := range ranges {
		prog, err := rng.Material.Program.Handle()
		if err != nil {
			return r.fail("draw", fmt.Errorf("%q material %d (%q): %w", obj.Name, i, rng.Material.Name, err))
		}
		cmd := gfx.DrawCommand{
			Buffers: obj.Mesh.Buffers(),
			Program: prog,
			First:   rng.First,
			Count:   rng.Count,
			State:   r.frame.State,
			Uniforms: gfx.Uniforms{
				Model:      world,
				View:       r.frame.View,
				Projection: r.frame.Projection,
				Normal:     normal,
				Albedo:     rng.Material.Albedo,
				LightDir:   r.frame.LightDir,
				LightColor: r.frame.LightColor,
			},
		}
		if err := r.dev.Draw(cmd); err != nil {
			return r.fail("draw", fmt.Errorf("%q range %d: %w", obj.Name, i, err))
		}
		r.stats.DrawCalls++
	}
	r.stats.Objects++
	return nil
}

// DrawAll draws objs in order and stops at the first error.
func (r *Renderer) DrawAll(objs []*scene.Object3D) error {
	for _, o := range objs {
		if err := r.Draw(o); err != nil {
			return err
		}
	}
	return nil
}

// Show presents the frame. The renderer accepts no calls afterwards.
func (r *Renderer) Show() error {
	if r.shown {
		return ErrFrameShown
	}
	r.shown = true
	if err := r.dev.Present(); err != nil {
		return r.fail("show", fmt.Errorf("present: %w", err))
	}
	return nil
}

// Stats returns the counts so far.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Frame returns the frame state with the normalized light direction.
func (r *Renderer) Frame() Frame {
	return r.frame
}

func (r *Renderer) fail(op string, err error) error {
	r.log.Error("render failed", zap.String("op", op), zap.Error(err))
	return err
}
