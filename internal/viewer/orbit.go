package viewer

import (
	gomath "math"

	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/pkg/math"
)

// Orbiter moves an object on a horizontal circle around the origin.
type Orbiter struct {
	Object *scene.Object3D
	// Radius is a multiple of the object's Z scale.
	Radius float32
	// Speed is in radians per second.
	Speed float32
	Angle float32
}

// Tick places the object at the current angle, then advances the angle by
// Speed*dt. The radius is measured in units of the object's Z scale.
func (o *Orbiter) Tick(dt float32) {
	s, c := gomath.Sincos(float64(o.Angle))
	r := o.Object.Transform.Scale().Z * o.Radius
	o.Object.Transform.SetPosition(math.V3(float32(s), 0, float32(c)).Scale(r))
	o.Angle += o.Speed * dt
}

// Orbiters returns an Orbiter for every configured object with an orbit.
func Orbiters(sc *scene.Scene, cfg config.SceneConfig) []*Orbiter {
	var out []*Orbiter
	for _, oc := range cfg.Objects {
		if oc.Orbit == nil {
			continue
		}
		obj := sc.Find(oc.Name)
		if obj == nil {
			continue
		}
		out = append(out, &Orbiter{Object: obj, Radius: oc.Orbit.Radius, Speed: oc.Orbit.Speed})
	}
	return out
}

// Tick advances every orbiter.
func Tick(orbiters []*Orbiter, dt float32) {
	for _, o := range orbiters {
		o.Tick(dt)
	}
}
