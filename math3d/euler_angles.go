package math3d

import (
	"fmt"
)

// EulerAngles are stored in radians. They are applied bank (Z) first, then
// pitch (X), then heading (Y).
type EulerAngles struct {
	Heading float64 // y
	Pitch   float64 // x
	Bank    float64 // z
}

type rotation int

const (
	RotationHeading rotation = iota
	RotationPitch   rotation = iota
	RotationBank    rotation = iota
)

var (
	IdentityOrientation = EulerAngles{}
)

// MakeSingularEulerAngle returns an orientation rotated around a single axis
// by the given number of degrees.
func MakeSingularEulerAngle(rot rotation, angle float64) EulerAngles {
	ea := EulerAngles{}

	switch rot {
	case RotationHeading:
		ea.Heading = Rad(angle)

	case RotationPitch:
		ea.Pitch = Rad(angle)

	case RotationBank:
		ea.Bank = Rad(angle)

	default:
		panic("invalid rotation")
	}

	return ea
}

// Quaternion converts the angles into a single rotation.
func (ea EulerAngles) Quaternion() Quaternion {
	h := MakeAxisAngle(Up, ea.Heading)
	p := MakeAxisAngle(Right, ea.Pitch)
	b := MakeAxisAngle(Forward, ea.Bank)
	return h.Mul(p).Mul(b)
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{h=%+.2f° p=%+.2f° b=%+.2f°}", Deg(ea.Heading), Deg(ea.Pitch), Deg(ea.Bank))
}
