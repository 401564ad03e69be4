package math3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quaternion is a rotation. Only unit quaternions are meaningful; the zero
// value is NOT the identity, so use IdentityQuaternion.
type Quaternion quat.Number

var (
	IdentityQuaternion = Quaternion{Real: 1}
)

// MakeAxisAngle returns a rotation of alpha radians (right-handed) around the
// given axis. The axis need not be normalized, but must not be zero.
func MakeAxisAngle(axis Vector3, alpha float64) Quaternion {
	if alpha == 0 || axis.Zero() {
		return IdentityQuaternion
	}
	return Quaternion(r3.NewRotation(alpha, r3.Vec(axis)))
}

// FromToRotation returns the shortest rotation which maps the direction of
// from onto the direction of to. Neither vector needs to be normalized. If
// either is zero, the identity is returned.
func FromToRotation(from Vector3, to Vector3) Quaternion {
	a := from.Unit()
	b := to.Unit()
	if a.Zero() || b.Zero() {
		return IdentityQuaternion
	}

	d := a.Dot(b)
	if d >= 1-1e-12 {
		return IdentityQuaternion
	}

	// Opposite directions: any perpendicular axis will do.
	if d <= -1+1e-12 {
		return MakeAxisAngle(a.Perpendicular(), math.Pi)
	}

	// The half-way quaternion, normalized.
	c := a.Cross(b)
	return Quaternion{Real: 1 + d, Imag: c.X, Jmag: c.Y, Kmag: c.Z}.Normalize()
}

func (q Quaternion) String() string {
	return fmt.Sprintf("&Quat{w=%+.4f x=%+.4f y=%+.4f z=%+.4f}", q.Real, q.Imag, q.Jmag, q.Kmag)
}

func (q Quaternion) number() quat.Number {
	return quat.Number(q)
}

// Normalize returns the quaternion scaled to unit length.
func (q Quaternion) Normalize() Quaternion {
	n := quat.Abs(q.number())
	if n == 0 {
		return IdentityQuaternion
	}
	return Quaternion(quat.Scale(1/n, q.number()))
}

// Mul returns the product q*qq, which applies qq first and then q.
func (q Quaternion) Mul(qq Quaternion) Quaternion {
	return Quaternion(quat.Mul(q.number(), qq.number()))
}

// Inverse returns the inverse rotation. For unit quaternions this is the
// conjugate.
func (q Quaternion) Inverse() Quaternion {
	return Quaternion(quat.Conj(q.number()))
}

// Rotate returns the vector v rotated by q.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	return Vector3(r3.Rotation(q).Rotate(r3.Vec(v)))
}

// Forward returns the direction which the given local axis points in once
// rotated by q.
func (q Quaternion) Forward(axis Vector3) Vector3 {
	return q.Rotate(axis)
}

// Equals returns true if both quaternions represent the same rotation, to
// within eps. Note that q and -q are the same rotation.
func (q Quaternion) Equals(qq Quaternion, eps float64) bool {
	d := q.Real*qq.Real + q.Imag*qq.Imag + q.Jmag*qq.Jmag + q.Kmag*qq.Kmag
	if d < 0 {
		d = -d
	}
	return 1-d <= eps
}
