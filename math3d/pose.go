package math3d

import (
	"fmt"
)

// Pose is a position and orientation, either in the world space or relative
// to some parent pose.
type Pose struct {
	Position    Vector3
	Orientation Quaternion
}

var (
	IdentityPose = Pose{Orientation: IdentityQuaternion}
)

// MakePose returns a pose at the given position, rotated by ea.
func MakePose(v Vector3, ea EulerAngles) Pose {
	return Pose{
		Position:    v,
		Orientation: ea.Quaternion(),
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+07.2f y=%+07.2f z=%+07.2f, r=%s}", p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
}

// Apply transforms a vector in this pose's coordinate space into the parent
// space.
func (p Pose) Apply(v Vector3) Vector3 {
	return p.Position.Add(p.Orientation.Rotate(v))
}

// Add returns pp (which is relative to p) in the parent space of p.
func (p Pose) Add(pp Pose) Pose {
	return Pose{
		Position:    p.Apply(pp.Position),
		Orientation: p.Orientation.Mul(pp.Orientation).Normalize(),
	}
}

// Out returns pp (which is in the parent space of p) relative to p. This is
// the inverse of Add, such that p.Add(p.Out(pp)) == pp.
func (p Pose) Out(pp Pose) Pose {
	inv := p.Orientation.Inverse()
	return Pose{
		Position:    inv.Rotate(pp.Position.Subtract(p.Position)),
		Orientation: inv.Mul(pp.Orientation).Normalize(),
	}
}
