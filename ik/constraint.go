package ik

import (
	"github.com/adammck/quadruped/math3d"
	"zappem.net/pub/math/geom"
)

// ClampDirection returns proposed, rotated (if necessary) such that it lies
// within maxAngle of reference. Directions already inside the cone are
// returned unchanged. The magnitude of proposed is preserved.
func ClampDirection(reference, proposed math3d.Vector3, maxAngle geom.Angle) math3d.Vector3 {
	if reference.Zero() || proposed.Zero() {
		return proposed
	}

	angle := proposed.Angle(reference)
	excess := angle - float64(maxAngle)
	if excess <= 0 {
		return proposed
	}

	// Rotating around proposed x reference (right-handed) swings proposed
	// towards reference. When they're antiparallel, every perpendicular axis
	// is equally short.
	axis := proposed.Cross(reference)
	if geom.Zeroish(axis.Magnitude()) {
		axis = reference.Perpendicular()
	}

	return proposed.RotateAround(excess, axis)
}
