package legs

import (
	"fmt"

	"github.com/adammck/quadruped/components/legs/gait"
	"github.com/adammck/quadruped/ik"
	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
)

// Geometry describes the joints of the right-front leg, from the hip to the
// foot, in the body space. The other three legs are mirrored from it.
type Geometry struct {
	Joints []math3d.Vector3
}

// DefaultGeometry returns a leg which reaches outwards from the hip and bends
// down to the ground, without bending any joint past the default limit.
func DefaultGeometry() Geometry {
	return Geometry{
		Joints: []math3d.Vector3{
			{X: 2.0, Y: 0.0, Z: 3.0},  // hip
			{X: 4.0, Y: 0.0, Z: 3.0},  // knee
			{X: 6.0, Y: -1.6, Z: 3.0}, // ankle
			{X: 6.6, Y: -4.6, Z: 3.0}, // foot
		},
	}
}

// Mirror returns the geometry reflected into the given corner.
func (g Geometry) Mirror(side gait.Side, end gait.End) Geometry {
	out := Geometry{Joints: make([]math3d.Vector3, len(g.Joints))}
	for i, j := range g.Joints {
		out.Joints[i] = gait.Mirror(j, side, end)
	}
	return out
}

// Foot returns the position of the last joint, or zero if there are none.
func (g Geometry) Foot() math3d.Vector3 {
	if len(g.Joints) == 0 {
		return math3d.ZeroVector3
	}
	return g.Joints[len(g.Joints)-1]
}

type Leg struct {
	Name   string
	Joints []*scene.Transform
	Chain  *ik.Chain

	// The point (in the body space) at which the foot rests.
	Rest math3d.Vector3
}

// NewLeg creates the joints of a leg as a nested chain under the body, each
// pointing at the next, and an IK chain to move them. Joint positions are in
// the body space.
func NewLeg(body *scene.Transform, name string, geo Geometry, cfg ik.Config) (*Leg, error) {
	joints := make([]*scene.Transform, len(geo.Joints))
	nodes := make([]scene.Node, len(geo.Joints))

	parent := body
	q := body.Orientation()

	for i, p := range geo.Joints {
		if i < len(geo.Joints)-1 {
			dir := body.Orientation().Rotate(geo.Joints[i+1].Subtract(p))
			q = math3d.FromToRotation(cfg.Axis, dir)
		}

		j := parent.NewChild(fmt.Sprintf("%s/%d", name, i), math3d.IdentityPose)
		j.SetPositionAndOrientation(body.TransformPoint(p), q)

		joints[i] = j
		nodes[i] = j
		parent = j
	}

	c, err := ik.NewChain(name, nodes, cfg)
	if err != nil {
		return nil, err
	}

	return &Leg{
		Name:   name,
		Joints: joints,
		Chain:  c,
		Rest:   geo.Foot(),
	}, nil
}

// Foot returns the present world position of the foot.
func (leg *Leg) Foot() math3d.Vector3 {
	return leg.Chain.EndEffector()
}

// Hip returns the present world position of the hip.
func (leg *Leg) Hip() math3d.Vector3 {
	if len(leg.Joints) == 0 {
		return math3d.ZeroVector3
	}
	return leg.Joints[0].Position()
}
