package math3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	ZeroVector3 = Vector3{}

	// Unit axes. Y is up and Z is forwards, in every coordinate space.
	Right   = Vector3{X: 1}
	Up      = Vector3{Y: 1}
	Forward = Vector3{Z: 1}
)

// MakeVector3 returns a new Vector3.
func MakeVector3(x float64, y float64, z float64) Vector3 {
	return Vector3{x, y, z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.3f y=%0.3f z=%0.3f}", v.X, v.Y, v.Z)
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec(v)
}

// Zero returns true if the vector is at 0,0,0.
func (v Vector3) Zero() bool {
	return (v.X == 0) && (v.Y == 0) && (v.Z == 0)
}

// Finite returns false if any component is NaN or infinite.
func (v Vector3) Finite() bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Add adds two vectors, and returns the result.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3(r3.Add(v.vec(), vv.vec()))
}

// Subtract returns the vector from vv to v.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3(r3.Sub(v.vec(), vv.vec()))
}

// MultiplyByScalar returns a new vector, scaled by s.
func (v Vector3) MultiplyByScalar(s float64) Vector3 {
	return Vector3(r3.Scale(s, v.vec()))
}

func (v Vector3) Dot(vv Vector3) float64 {
	return r3.Dot(v.vec(), vv.vec())
}

func (v Vector3) Cross(vv Vector3) Vector3 {
	return Vector3(r3.Cross(v.vec(), vv.vec()))
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return r3.Norm(v.vec())
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector3) Distance(vv Vector3) float64 {
	return r3.Norm(r3.Sub(v.vec(), vv.vec()))
}

// Unit returns a vector with the same direction and a magnitude of one. The
// zero vector has no direction, so is returned as-is.
func (v Vector3) Unit() Vector3 {
	if v.Zero() {
		return ZeroVector3
	}
	return Vector3(r3.Unit(v.vec()))
}

// Lerp returns the point at ratio t along the line from v to vv. Ratios
// outside of [0, 1] extrapolate.
func (v Vector3) Lerp(vv Vector3, t float64) Vector3 {
	return v.Add(vv.Subtract(v).MultiplyByScalar(t))
}

// Angle returns the angle (in radians) between two vectors. If either is the
// zero vector, the angle is zero.
func (v Vector3) Angle(vv Vector3) float64 {
	if v.Zero() || vv.Zero() {
		return 0
	}
	c := r3.Cos(v.vec(), vv.vec())
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// RotateAround returns the vector rotated by alpha radians (right-handed)
// around the given axis.
func (v Vector3) RotateAround(alpha float64, axis Vector3) Vector3 {
	return Vector3(r3.Rotate(v.vec(), alpha, axis.vec()))
}

// Perpendicular returns an arbitrary unit vector perpendicular to v.
func (v Vector3) Perpendicular() Vector3 {
	p := v.Cross(Right)
	if p.Magnitude() < 1e-6 {
		p = v.Cross(Up)
	}
	return p.Unit()
}
