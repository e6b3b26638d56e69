package scene

import "github.com/Faultbox/boardview/pkg/math"

// Transform is a position, scale and rotation in world space.
// The zero value is not usable; construct with NewTransform.
type Transform struct {
	position math.Vec3
	scale    math.Vec3
	rotation math.Quat
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		scale:    math.Fill(1),
		rotation: math.QuatIdentity(),
	}
}

// ScaleBy multiplies the scale component-wise.
func (t *Transform) ScaleBy(v math.Vec3) {
	t.scale = t.scale.Mul(v)
}

// Translate adds v to the position.
func (t *Transform) Translate(v math.Vec3) {
	t.position = t.position.Add(v)
}

// SetPosition overwrites the position.
func (t *Transform) SetPosition(p math.Vec3) {
	t.position = p
}

// SetScale overwrites the scale.
func (t *Transform) SetScale(s math.Vec3) {
	t.scale = s
}

// Rotate applies q after the current rotation.
func (t *Transform) Rotate(q math.Quat) {
	t.rotation = q.Mul(t.rotation).Normalize()
}

// SetRotation overwrites the rotation.
func (t *Transform) SetRotation(q math.Quat) {
	t.rotation = q.Normalize()
}

// Position returns the current position.
func (t *Transform) Position() math.Vec3 {
	return t.position
}

// Scale returns the current scale.
func (t *Transform) Scale() math.Vec3 {
	return t.scale
}

// Rotation returns the current rotation.
func (t *Transform) Rotation() math.Quat {
	return t.rotation
}

// WorldMatrix returns Translate * Rotate * Scale.
func (t *Transform) WorldMatrix() math.Mat4 {
	return math.Translate(t.position).Mul(t.rotation.ToMat4()).Mul(math.Scale(t.scale))
}
