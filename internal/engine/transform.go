package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Local basis vectors. Forward is -Z, matching the mesh exporter.
var (
	ForwardAxis = rl.Vector3{X: 0, Y: 0, Z: -1}
	UpAxis      = rl.Vector3{X: 0, Y: 1, Z: 0}
	RightAxis   = rl.Vector3{X: 1, Y: 0, Z: 0}
)

// Transform is a position and orientation relative to an optional parent.
// The parent link is set by Object.AddChild and never owns the parent.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	parent   *Transform
}

func NewTransform() Transform {
	return Transform{Rotation: rl.QuaternionIdentity()}
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// rotation treats the zero quaternion as identity so a zero Transform is usable.
func (t *Transform) rotation() rl.Quaternion {
	if t.Rotation == (rl.Quaternion{}) {
		return rl.QuaternionIdentity()
	}
	return t.Rotation
}

func (t *Transform) Translate(delta rl.Vector3) {
	t.Position = rl.Vector3Add(t.Position, delta)
}

// RotateLocal rotates around an axis expressed in this transform's local space.
func (t *Transform) RotateLocal(axis rl.Vector3, angle float32) {
	q := rl.QuaternionFromAxisAngle(axis, angle)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.rotation(), q))
}

// RotateGlobal rotates around an axis expressed in the parent space.
func (t *Transform) RotateGlobal(axis rl.Vector3, angle float32) {
	local := rl.Vector3RotateByQuaternion(axis, rl.QuaternionInvert(t.rotation()))
	t.RotateLocal(local, angle)
}

func (t *Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(ForwardAxis, t.rotation())
}

func (t *Transform) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(UpAxis, t.rotation())
}

func (t *Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(RightAxis, t.rotation())
}

// WorldPosition folds the position through every ancestor's rotation and offset.
func (t *Transform) WorldPosition() rl.Vector3 {
	ret := t.Position
	for p := t.parent; p != nil; p = p.parent {
		ret = rl.Vector3Add(rl.Vector3RotateByQuaternion(ret, p.rotation()), p.Position)
	}
	return ret
}

func (t *Transform) WorldRotation() rl.Quaternion {
	ret := t.rotation()
	for p := t.parent; p != nil; p = p.parent {
		ret = rl.QuaternionMultiply(p.rotation(), ret)
	}
	return ret
}

// WorldDirection maps a local direction into world space.
func (t *Transform) WorldDirection(local rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(local, t.WorldRotation())
}

// LocalMatrix is translate(position) * rotate(rotation).
func (t *Transform) LocalMatrix() rl.Matrix {
	// raylib multiplies left to right in application order.
	return rl.MatrixMultiply(rl.QuaternionToMatrix(t.rotation()), rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))
}

// Matrix returns the local-to-world matrix. It is recomputed on every call.
func (t *Transform) Matrix() rl.Matrix {
	if t.parent == nil {
		return t.LocalMatrix()
	}
	return rl.MatrixMultiply(t.LocalMatrix(), t.parent.Matrix())
}

// LookRotation returns the rotation whose forward axis points along dir with
// the given up hint. Degenerate input falls back to another up hint.
func LookRotation(dir, up rl.Vector3) rl.Quaternion {
	f := rl.Vector3Normalize(dir)
	if rl.Vector3Length(f) == 0 {
		return rl.QuaternionIdentity()
	}
	r := rl.Vector3CrossProduct(f, up)
	if rl.Vector3Length(r) < 1e-6 {
		r = rl.Vector3CrossProduct(f, rl.Vector3{Z: 1})
		if rl.Vector3Length(r) < 1e-6 {
			r = rl.Vector3CrossProduct(f, rl.Vector3{X: 1})
		}
	}
	r = rl.Vector3Normalize(r)
	u := rl.Vector3CrossProduct(r, f)
	return basisToQuaternion(r, u, rl.Vector3Negate(f))
}

// basisToQuaternion converts an orthonormal basis (matrix columns x, y, z).
func basisToQuaternion(x, y, z rl.Vector3) rl.Quaternion {
	m00, m01, m02 := float64(x.X), float64(y.X), float64(z.X)
	m10, m11, m12 := float64(x.Y), float64(y.Y), float64(z.Y)
	m20, m21, m22 := float64(x.Z), float64(y.Z), float64(z.Z)

	var qx, qy, qz, qw float64
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		qw = 0.25 / s
		qx = (m21 - m12) * s
		qy = (m02 - m20) * s
		qz = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		qw = (m21 - m12) / s
		qx = 0.25 * s
		qy = (m01 + m10) / s
		qz = (m02 + m20) / s
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		qw = (m02 - m20) / s
		qx = (m01 + m10) / s
		qy = 0.25 * s
		qz = (m12 + m21) / s
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		qw = (m10 - m01) / s
		qx = (m02 + m20) / s
		qy = (m12 + m21) / s
		qz = 0.25 * s
	}
	return rl.QuaternionNormalize(rl.Quaternion{X: float32(qx), Y: float32(qy), Z: float32(qz), W: float32(qw)})
}
