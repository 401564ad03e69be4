package gait

import (
	"testing"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimb struct {
	name   string
	target math3d.Vector3
}

func (l *fakeLimb) Name() string               { return l.name }
func (l *fakeLimb) Target() math3d.Vector3     { return l.target }
func (l *fakeLimb) SetTarget(v math3d.Vector3) { l.target = v }

func testConfig() Config {
	return Config{
		TriggerDistance: 1,
		TimeScale:       Keys{{0, 0}, {0.5, 1}},
		Height:          Arc{Height: 1},
		Up:              math3d.Up,
	}
}

// quad returns a body at the origin with four legs whose targets are at their
// rest points, ordered left-front, right-front, left-back, right-back.
func quad(t *testing.T, cfg Config) (*scene.Transform, []*fakeLimb, *Coordinator) {
	body := scene.NewRoot("body", math3d.IdentityPose)
	offset := math3d.MakeVector3(1, 0, 1)

	corners := []struct {
		name string
		side Side
		end  End
	}{
		{"LF", Left, Front},
		{"RF", Right, Front},
		{"LB", Left, Back},
		{"RB", Right, Back},
	}

	limbs := make([]*fakeLimb, len(corners))
	legs := make([]Leg, len(corners))
	for i, c := range corners {
		o := Mirror(offset, c.side, c.end)
		limbs[i] = &fakeLimb{name: c.name, target: body.TransformPoint(o)}
		legs[i] = Leg{Limb: limbs[i], Offset: o}
	}

	c, err := New(body, legs, cfg)
	require.NoError(t, err)
	return body, limbs, c
}

func targets(limbs []*fakeLimb) []math3d.Vector3 {
	out := make([]math3d.Vector3, len(limbs))
	for i, l := range limbs {
		out[i] = l.target
	}
	return out
}

func TestMirror(t *testing.T) {
	v := math3d.MakeVector3(2, -3, 4)
	assert.Equal(t, math3d.MakeVector3(-2, -3, 4), Mirror(v, Left, Front))
	assert.Equal(t, math3d.MakeVector3(2, -3, 4), Mirror(v, Right, Front))
	assert.Equal(t, math3d.MakeVector3(-2, -3, -4), Mirror(v, Left, Back))
	assert.Equal(t, math3d.MakeVector3(2, -3, -4), Mirror(v, Right, Back))
}

func TestNewInvalid(t *testing.T) {
	body := scene.NewRoot("body", math3d.IdentityPose)
	legs := []Leg{{Limb: &fakeLimb{name: "LF"}}}

	_, err := New(nil, legs, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(body, nil, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(body, []Leg{{}}, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testConfig()
	cfg.TriggerDistance = -1
	_, err = New(body, legs, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testConfig()
	cfg.TimeScale = Keys{{0, 0}, {1, 0.5}}
	_, err = New(body, legs, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrInvalidCurve)

	cfg = testConfig()
	cfg.Height = Keys{{0, 1}, {1, 0}}
	_, err = New(body, legs, cfg)
	assert.ErrorIs(t, err, ErrInvalidCurve)

	cfg = testConfig()
	cfg.Up = math3d.ZeroVector3
	_, err = New(body, legs, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	assert.NoError(t, DefaultConfig().Validate())
}

func TestIdleWithinTrigger(t *testing.T) {
	body, limbs, c := quad(t, testConfig())
	before := targets(limbs)

	// Less than the trigger distance.
	body.SetPosition(math3d.MakeVector3(0, 0, 0.9))

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Tick(100*time.Millisecond))
		assert.Equal(t, Idle, c.State())
	}

	_, ok := c.Active()
	assert.False(t, ok)
	assert.Equal(t, before, targets(limbs))
}

func TestOneLegAtATime(t *testing.T) {
	body, limbs, c := quad(t, testConfig())
	before := targets(limbs)

	// Every leg is now over the trigger distance.
	body.SetPosition(math3d.MakeVector3(0, 0, 5))

	require.NoError(t, c.Tick(0))
	assert.Equal(t, Stepping, c.State())
	i, ok := c.Active()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	// While the first leg steps, nobody else moves.
	for n := 0; n < 4; n++ {
		require.NoError(t, c.Tick(100*time.Millisecond))
		assert.Equal(t, Stepping, c.State())

		now := targets(limbs)
		assert.NotEqual(t, before[0], now[0])
		assert.Equal(t, before[1:], now[1:])

		active := 0
		for _, ls := range c.Snapshot() {
			if ls.Active {
				active += 1
			}
		}
		assert.Equal(t, 1, active)
	}

	// Finish, then the rest go in priority order.
	require.NoError(t, c.Tick(100*time.Millisecond))
	assert.Equal(t, Idle, c.State())

	for _, exp := range []int{1, 2, 3} {
		require.NoError(t, c.Tick(0))
		i, ok := c.Active()
		require.True(t, ok)
		assert.Equal(t, exp, i, limbs[i].name)

		for n := 0; n < 5; n++ {
			require.NoError(t, c.Tick(100*time.Millisecond))
		}
		assert.Equal(t, Idle, c.State())
	}

	for i := range limbs {
		assert.Equal(t, c.RestPoint(i), limbs[i].target)
	}

	require.NoError(t, c.Tick(0))
	assert.Equal(t, Idle, c.State())
}

func TestPriorityOrder(t *testing.T) {
	_, limbs, c := quad(t, testConfig())

	// Only the back legs have drifted; left wins.
	limbs[3].target = limbs[3].target.Add(math3d.MakeVector3(0, 0, 3))
	limbs[2].target = limbs[2].target.Add(math3d.MakeVector3(0, 0, 3))

	require.NoError(t, c.Tick(0))
	i, ok := c.Active()
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestStepTrajectory(t *testing.T) {
	body, limbs, c := quad(t, testConfig())
	body.SetPosition(math3d.MakeVector3(0, 0, 5))
	require.NoError(t, c.Tick(0))

	// Half way through, the foot is half way there and at the top of the arc.
	require.NoError(t, c.Tick(250*time.Millisecond))
	v := limbs[0].target
	assert.InDelta(t, -1, v.X, 1e-9)
	assert.InDelta(t, 1, v.Y, 1e-9)
	assert.InDelta(t, 3.5, v.Z, 1e-9)
}

func TestStepCompletes(t *testing.T) {
	body, limbs, c := quad(t, testConfig())
	assert.Equal(t, 500*time.Millisecond, c.StepDuration())

	body.SetPosition(math3d.MakeVector3(0, 0, 5))
	require.NoError(t, c.Tick(0))
	dest := c.RestPoint(0)

	for n := 0; n < 4; n++ {
		require.NoError(t, c.Tick(100*time.Millisecond))
	}
	assert.Equal(t, Stepping, c.State())
	assert.NotEqual(t, dest, limbs[0].target)

	// The last tick snaps to the destination and goes idle at once.
	require.NoError(t, c.Tick(100*time.Millisecond))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, dest, limbs[0].target)
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestOvershootingTickCompletes(t *testing.T) {
	body, limbs, c := quad(t, testConfig())
	body.SetPosition(math3d.MakeVector3(0, 0, 5))
	require.NoError(t, c.Tick(0))

	require.NoError(t, c.Tick(time.Second))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, c.RestPoint(0), limbs[0].target)
}

func TestNegativeTick(t *testing.T) {
	_, _, c := quad(t, testConfig())
	assert.ErrorIs(t, c.Tick(-time.Millisecond), ErrNegativeTick)
}

func TestSnapshot(t *testing.T) {
	body, _, c := quad(t, testConfig())
	body.SetPosition(math3d.MakeVector3(0, 0, 2))

	s := c.Snapshot()
	require.Len(t, s, 4)
	assert.Equal(t, "LF", s[0].Name)
	assert.InDelta(t, 2, s[0].Distance, 1e-9)
	assert.Equal(t, math3d.MakeVector3(-1, 0, 3), s[0].Rest)
	assert.False(t, s[0].Active)
}
