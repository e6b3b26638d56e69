// Package scene holds the objects to draw: transforms, meshes and the flat
// list that owns them.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/logger"
)

// Scene is an ordered flat list of objects. Draw order is insertion order.
type Scene struct {
	objects []*Object3D
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends an object. Names must be unique and non-empty.
func (s *Scene) Add(obj *Object3D) error {
	if obj == nil {
		return fmt.Errorf("add: nil object")
	}
	if obj.Name == "" {
		return fmt.Errorf("add: object has no name")
	}
	if s.Find(obj.Name) != nil {
		return fmt.Errorf("add: duplicate object %q", obj.Name)
	}
	s.objects = append(s.objects, obj)
	logger.Debug("object added", zap.String("name", obj.Name), zap.Int("count", len(s.objects)))
	return nil
}

// Find returns the object with the given name, or nil.
func (s *Scene) Find(name string) *Object3D {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Objects returns the objects in draw order. The slice must not be modified.
func (s *Scene) Objects() []*Object3D {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Close frees every object's mesh and empties the scene.
func (s *Scene) Close() {
	for _, o := range s.objects {
		o.Close()
	}
	s.objects = nil
}
