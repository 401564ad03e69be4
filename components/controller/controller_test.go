package controller

import (
	"testing"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward(t *testing.T) {
	body := scene.NewRoot("body", math3d.MakePose(math3d.MakeVector3(1, 4, 0), math3d.IdentityOrientation))
	c := New(body, 2, 0)
	require.NoError(t, c.Boot())

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Tick(100*time.Millisecond))
	}

	p := body.Position()
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 4, p.Y, 1e-9)
	assert.InDelta(t, 2, p.Z, 1e-9)
	assert.InDelta(t, 0, c.Heading(), 1e-9)
}

func TestTurn(t *testing.T) {
	body := scene.NewRoot("body", math3d.IdentityPose)
	c := New(body, 0, 90)
	require.NoError(t, c.Boot())

	for i := 0; i < 4; i++ {
		require.NoError(t, c.Tick(250*time.Millisecond))
	}

	assert.InDelta(t, 90, c.Heading(), 1e-9)
	assert.InDelta(t, 0, body.Position().Magnitude(), 1e-9)

	// The body now faces what was right.
	f := body.Orientation().Forward(math3d.Forward)
	assert.InDelta(t, 1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)
}

func TestBootKeepsHeading(t *testing.T) {
	pose := math3d.MakePose(math3d.ZeroVector3, math3d.MakeSingularEulerAngle(math3d.RotationHeading, 30))
	body := scene.NewRoot("body", pose)
	c := New(body, 1, 0)
	require.NoError(t, c.Boot())
	assert.InDelta(t, 30, c.Heading(), 1e-9)

	require.NoError(t, c.Tick(time.Second))
	p := body.Position()
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.8660254, p.Z, 1e-7)
}
