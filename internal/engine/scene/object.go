package scene

import "github.com/Faultbox/boardview/internal/engine/model"

// Object3D is a named mesh placed in the world. It owns its mesh.
type Object3D struct {
	Name      string
	Transform Transform
	Mesh      *model.Mesh
}

// NewObject3D wraps mesh with an identity transform.
func NewObject3D(name string, mesh *model.Mesh) *Object3D {
	return &Object3D{
		Name:      name,
		Transform: NewTransform(),
		Mesh:      mesh,
	}
}

// Close frees the mesh.
func (o *Object3D) Close() {
	if o.Mesh != nil {
		o.Mesh.Close()
	}
}
