// Package scene provides the transform tree which joints and bodies live in.
// Every node stores its pose relative to its parent; world poses are derived
// on demand, so moving a parent carries all of its descendants along.
package scene

import (
	"fmt"

	"github.com/adammck/quadruped/math3d"
)

// Node is the world-space view of a transform which the solver reads joint
// poses from and writes them back to.
type Node interface {
	Position() math3d.Vector3
	Orientation() math3d.Quaternion
	SetPosition(math3d.Vector3)
	SetOrientation(math3d.Quaternion)
	SetPositionAndOrientation(math3d.Vector3, math3d.Quaternion)
}

type Transform struct {
	Name     string
	parent   *Transform
	Children []*Transform
	local    math3d.Pose
}

// NewRoot returns a transform with no parent, at the given pose in the world
// space.
func NewRoot(name string, pose math3d.Pose) *Transform {
	return &Transform{
		Name:  name,
		local: pose,
	}
}

// NewChild returns a transform at the given pose, relative to t.
func (t *Transform) NewChild(name string, local math3d.Pose) *Transform {
	c := &Transform{
		Name:   name,
		parent: t,
		local:  local,
	}
	t.Children = append(t.Children, c)
	return c
}

func (t *Transform) String() string {
	return fmt.Sprintf("&Transform{%s: %s}", t.Name, t.World())
}

// Parent returns the parent transform, or nil if this is a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Local returns the pose relative to the parent.
func (t *Transform) Local() math3d.Pose {
	return t.local
}

// SetLocal replaces the pose relative to the parent.
func (t *Transform) SetLocal(p math3d.Pose) {
	t.local = p
}

// World returns the pose in the world coordinate space.
func (t *Transform) World() math3d.Pose {
	if t.parent == nil {
		return t.local
	}
	return t.parent.World().Add(t.local)
}

func (t *Transform) Position() math3d.Vector3 {
	return t.World().Position
}

func (t *Transform) Orientation() math3d.Quaternion {
	return t.World().Orientation
}

func (t *Transform) SetPosition(v math3d.Vector3) {
	t.SetPositionAndOrientation(v, t.Orientation())
}

func (t *Transform) SetOrientation(q math3d.Quaternion) {
	t.SetPositionAndOrientation(t.Position(), q)
}

// SetPositionAndOrientation moves the transform to the given world pose in a
// single write, so the parent pose is only resolved once.
func (t *Transform) SetPositionAndOrientation(v math3d.Vector3, q math3d.Quaternion) {
	world := math3d.Pose{Position: v, Orientation: q.Normalize()}
	if t.parent == nil {
		t.local = world
		return
	}
	t.local = t.parent.World().Out(world)
}

// TransformPoint converts a point in this transform's space into the world
// space.
func (t *Transform) TransformPoint(v math3d.Vector3) math3d.Vector3 {
	return t.World().Apply(v)
}

// InverseTransformPoint converts a point in the world space into this
// transform's space.
func (t *Transform) InverseTransformPoint(v math3d.Vector3) math3d.Vector3 {
	w := t.World()
	return w.Orientation.Inverse().Rotate(v.Subtract(w.Position))
}
