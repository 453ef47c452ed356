package simenv

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid pose: a translation plus a unit-quaternion rotation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityTransform returns the identity pose.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// Mul composes two transforms: (t.Mul(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(o.Position)),
		Rotation: t.Rotation.Mul(o.Rotation).Normalize(),
	}
}

// Apply maps a point from the local frame into the parent frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(p))
}

// Mat4 returns the pose as a homogeneous 4x4 matrix.
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// PoseFromXYZEuler builds a transform from a translation and intrinsic
// XYZ Euler angles, the pose parameterization used for base DOFs.
func PoseFromXYZEuler(x, y, z, rx, ry, rz float64) Transform {
	return Transform{
		Position: mgl64.Vec3{x, y, z},
		Rotation: mgl64.AnglesToQuat(rx, ry, rz, mgl64.XYZ).Normalize(),
	}
}

// XYZEuler decomposes the pose back into the six base DOF values.
// The middle angle is reported in [-pi/2, pi/2].
func (t Transform) XYZEuler() (x, y, z, rx, ry, rz float64) {
	m := t.Rotation.Mat4()
	// For R = Rx(a)Ry(b)Rz(c): m02 = sin b, m12 = -sin a cos b, m01 = -cos b sin c.
	sb := clamp(m.At(0, 2), -1, 1)
	b := math.Asin(sb)
	var a, c float64
	if math.Abs(sb) < 1-1e-9 {
		a = math.Atan2(-m.At(1, 2), m.At(2, 2))
		c = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		// Gimbal lock: fold the third rotation into the first.
		a = math.Atan2(m.At(1, 0), m.At(1, 1))
		c = 0
	}
	return t.Position.X(), t.Position.Y(), t.Position.Z(), a, b, c
}

// ApproxEqual reports whether two poses agree within eps, treating q and
// -q as the same rotation.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	if !t.Position.ApproxEqualThreshold(o.Position, eps) {
		return false
	}
	d := t.Rotation.Dot(o.Rotation)
	return math.Abs(1-math.Abs(d)) < eps
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
