package scene

import (
	"testing"

	"github.com/adammck/quadruped/math3d"
	"github.com/stretchr/testify/assert"
)

func assertVector(t *testing.T, exp math3d.Vector3, act math3d.Vector3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, exp.X, act.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, exp.Y, act.Y, 1e-9, msgAndArgs...)
	assert.InDelta(t, exp.Z, act.Z, 1e-9, msgAndArgs...)
}

func heading(deg float64) math3d.Quaternion {
	return math3d.MakeSingularEulerAngle(math3d.RotationHeading, deg).Quaternion()
}

func TestWorld(t *testing.T) {
	type eg struct {
		pos math3d.Vector3 // position
		rot float64        // rotation (heading)
		vec math3d.Vector3 // input
		exp math3d.Vector3 // expected result
	}

	data := []eg{
		{math3d.Vector3{X: 0, Y: 0, Z: 0}, 0.0, math3d.Vector3{}, math3d.Vector3{}},
		{math3d.Vector3{X: 0, Y: 0, Z: 10}, 0.0, math3d.Vector3{}, math3d.Vector3{Z: 10}},
		{math3d.Vector3{X: 0, Y: 0, Z: 20}, 0.0, math3d.Vector3{X: 1}, math3d.Vector3{X: 1, Z: 20}},
		{math3d.Vector3{X: 0, Y: 0, Z: 30}, 90.0, math3d.Vector3{X: 1}, math3d.Vector3{Z: 29}},
	}

	for i, eg := range data {
		body := NewRoot("body", math3d.Pose{Position: eg.pos, Orientation: heading(eg.rot)})
		child := body.NewChild("child", math3d.Pose{Position: eg.vec, Orientation: math3d.IdentityQuaternion})

		assertVector(t, eg.exp, body.TransformPoint(eg.vec), "example #%d", i+1)
		assertVector(t, eg.exp, child.Position(), "example #%d", i+1)
		assertVector(t, eg.vec, body.InverseTransformPoint(eg.exp), "example #%d", i+1)
	}
}

func TestChildFollowsParent(t *testing.T) {
	body := NewRoot("body", math3d.IdentityPose)
	hip := body.NewChild("hip", math3d.Pose{Position: math3d.Vector3{X: 1}, Orientation: math3d.IdentityQuaternion})
	knee := hip.NewChild("knee", math3d.Pose{Position: math3d.Vector3{Z: 2}, Orientation: math3d.IdentityQuaternion})

	body.SetPositionAndOrientation(math3d.Vector3{Y: 5}, heading(90))

	assertVector(t, math3d.Vector3{Y: 5, Z: -1}, hip.Position())
	assertVector(t, math3d.Vector3{X: 2, Y: 5, Z: -1}, knee.Position())
	assert.Equal(t, body, hip.Parent())
	assert.Len(t, body.Children, 1)
}

func TestSetWorldPoseOfChild(t *testing.T) {
	body := NewRoot("body", math3d.Pose{Position: math3d.Vector3{X: 3, Y: 1}, Orientation: heading(45)})
	hip := body.NewChild("hip", math3d.IdentityPose)
	knee := hip.NewChild("knee", math3d.Pose{Position: math3d.Vector3{Z: 1}, Orientation: math3d.IdentityQuaternion})

	target := math3d.Vector3{X: -2, Y: 4, Z: 7}
	q := math3d.FromToRotation(math3d.Forward, math3d.Vector3{X: 1, Y: 1})
	knee.SetPositionAndOrientation(target, q)

	assertVector(t, target, knee.Position())
	assert.True(t, q.Equals(knee.Orientation(), 1e-9))

	// Moving the child alone must not disturb the parent.
	assertVector(t, math3d.Vector3{X: 3, Y: 1}, hip.Position())

	knee.SetPosition(math3d.Vector3{X: 1})
	assertVector(t, math3d.Vector3{X: 1}, knee.Position())
	assert.True(t, q.Equals(knee.Orientation(), 1e-9))

	knee.SetOrientation(math3d.IdentityQuaternion)
	assertVector(t, math3d.Vector3{X: 1}, knee.Position())
	assert.True(t, math3d.IdentityQuaternion.Equals(knee.Orientation(), 1e-9))
}
