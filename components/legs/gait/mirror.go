package gait

import (
	"github.com/adammck/quadruped/math3d"
)

type Side float64

const (
	Left  Side = -1
	Right Side = 1
)

type End float64

const (
	Front End = 1
	Back  End = -1
)

// Mirror reflects an offset given for the right-front leg into the given corner
// of the body, such that one offset can describe all four legs.
func Mirror(offset math3d.Vector3, side Side, end End) math3d.Vector3 {
	return math3d.Vector3{
		X: offset.X * float64(side),
		Y: offset.Y,
		Z: offset.Z * float64(end),
	}
}
