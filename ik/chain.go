// Package ik solves chains of rigid segments with FABRIK (Forward And Backward
// Reaching Inverse Kinematics), such that the free end of the chain reaches
// towards a target while every segment keeps its length and every joint bends
// no further than a fixed cone.
package ik

import (
	"fmt"
	"math"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/sirupsen/logrus"
	"zappem.net/pub/math/geom"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "ik",
})

// Chain is a sequence of joints. Joint zero is the root, which the solver
// never translates; the last joint is the end effector, which reaches for the
// target.
type Chain struct {
	name   string
	cfg    Config
	joints []scene.Node

	// Working copies of the joint poses in the world space. These are refreshed
	// from the joints at the start of each solve.
	positions    []math3d.Vector3
	orientations []math3d.Quaternion

	// The rest length of each segment, i.e. between joint i and i+1, measured
	// at setup.
	lengths     []float64
	totalLength float64

	target  math3d.Vector3
	enabled bool
}

// Result describes the outcome of a single solve.
type Result struct {

	// The poses which were written back to the joints. Nil unless Applied.
	Positions    []math3d.Vector3
	Orientations []math3d.Quaternion

	// The number of forward and backward passes. Always zero when the target
	// was out of reach, since that case is solved in a single pass.
	Iterations int

	Reachable bool
	Converged bool
	Stagnated bool
	Applied   bool
}

// NewChain returns a chain of the given joints. An error is only returned if
// the config is invalid; a chain with bad joints is returned disabled, with a
// warning logged, since that shouldn't stop the rest of the body from moving.
func NewChain(name string, joints []scene.Node, cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chain %s: %w", name, err)
	}

	c := &Chain{
		name:   name,
		cfg:    cfg,
		joints: joints,
	}

	if c.Setup() == nil {
		c.target = c.EndEffector()
	}

	return c, nil
}

func (c *Chain) Name() string {
	return c.name
}

// Enabled returns false if the last setup failed. Disabled chains never move.
func (c *Chain) Enabled() bool {
	return c.enabled
}

// Joints returns the joints of the chain, root first.
func (c *Chain) Joints() []scene.Node {
	return c.joints
}

// SetJoints replaces the joints of the chain, and runs setup again.
func (c *Chain) SetJoints(joints []scene.Node) error {
	c.joints = joints
	return c.Setup()
}

// Setup measures the rest length of every segment from the present positions
// of the joints. It must be called again whenever the joints are moved apart
// or replaced by anything other than the solver. If the joints can't form a
// chain, the chain is disabled and an error returned.
func (c *Chain) Setup() error {
	c.enabled = false
	n := len(c.joints)

	if n < 2 {
		log.Warnf("%s: disabled: %s (got %d)", c.name, ErrTooFewJoints, n)
		return fmt.Errorf("%w: got %d", ErrTooFewJoints, n)
	}

	c.positions = make([]math3d.Vector3, n)
	c.orientations = make([]math3d.Quaternion, n)
	c.lengths = make([]float64, n-1)
	c.totalLength = 0

	for i := 0; i < n-1; i++ {
		l := c.joints[i].Position().Distance(c.joints[i+1].Position())
		if geom.Zeroish(l) || math.IsNaN(l) || math.IsInf(l, 0) {
			log.Warnf("%s: disabled: %s (segment %d)", c.name, ErrDegenerateSegment, i)
			return fmt.Errorf("%w: segment %d has length %v", ErrDegenerateSegment, i, l)
		}

		c.lengths[i] = l
		c.totalLength += l
	}

	c.enabled = true
	log.Debugf("%s: %d joints, lengths=%v, total=%0.3f", c.name, n, c.lengths, c.totalLength)
	return nil
}

// SegmentLengths returns the rest length of each segment.
func (c *Chain) SegmentLengths() []float64 {
	return append([]float64(nil), c.lengths...)
}

// TotalLength returns the distance the chain spans when fully extended.
func (c *Chain) TotalLength() float64 {
	return c.totalLength
}

func (c *Chain) Target() math3d.Vector3 {
	return c.target
}

func (c *Chain) SetTarget(v math3d.Vector3) {
	c.target = v
}

// EndEffector returns the present world position of the last joint.
func (c *Chain) EndEffector() math3d.Vector3 {
	if len(c.joints) == 0 {
		return math3d.ZeroVector3
	}
	return c.joints[len(c.joints)-1].Position()
}

// Tick solves the chain towards its target. Disabled chains are skipped.
func (c *Chain) Tick(dt time.Duration) error {
	if !c.enabled {
		return nil
	}

	_, err := c.Solve(c.target)
	return err
}

// Solve moves the joints of the chain such that the end effector is as close
// as possible to the target, and returns what was done. Solving is
// deterministic: the same joints and target always produce the same pose.
func (c *Chain) Solve(target math3d.Vector3) (Result, error) {
	if !c.enabled {
		return Result{}, fmt.Errorf("%s: %w", c.name, ErrDisabled)
	}

	c.snapshot()
	res := Result{Reachable: true}

	if c.totalLength < c.positions[0].Distance(target) {
		res.Reachable = false
		c.stretch(target)

	} else {
		res.Iterations, res.Converged, res.Stagnated = c.reach(target)

		// Stagnation is the expected outcome when the joint limits prevent any
		// further progress, so the tick is silently skipped.
		if res.Stagnated {
			log.Debugf("%s: stagnated after %d iterations", c.name, res.Iterations)
			return res, nil
		}

		if !res.Converged {
			log.Warnf("%s: did not converge after %d iterations (distance=%0.4f)", c.name, res.Iterations, c.positions[len(c.positions)-1].Distance(target))
		}
	}

	c.apply()
	res.Applied = true
	res.Positions = append([]math3d.Vector3(nil), c.positions...)
	res.Orientations = append([]math3d.Quaternion(nil), c.orientations...)

	log.Debugf("%s: target=%s end=%s iterations=%d", c.name, target, c.positions[len(c.positions)-1], res.Iterations)
	return res, nil
}

// snapshot copies the present world pose of each joint into the working
// arrays.
func (c *Chain) snapshot() {
	for i, j := range c.joints {
		c.positions[i] = j.Position()
		c.orientations[i] = j.Orientation()
	}
}

// stretch points the whole chain in a straight line at a target which is out
// of reach. Joint limits are ignored, since a fully extended chain can't bend.
func (c *Chain) stretch(target math3d.Vector3) {
	p := c.positions
	for i := 0; i < len(p)-1; i++ {
		p[i+1] = p[i].Lerp(target, c.lengths[i]/target.Distance(p[i]))
	}
}

// reach runs forward and backward passes until the end effector is within
// tolerance of the target, progress stops, or the iteration limit is hit.
func (c *Chain) reach(target math3d.Vector3) (iterations int, converged bool, stalled bool) {
	p := c.positions
	end := len(p) - 1
	dist := p[end].Distance(target)

	for dist > c.cfg.Tolerance && iterations < c.cfg.MaxIterations {
		iterations += 1

		rootPosition := c.positions[0]
		rootOrientation := c.orientations[0]

		c.forward(target)

		c.positions[0] = rootPosition
		c.orientations[0] = rootOrientation

		c.backward()

		d := p[end].Distance(target)
		if stagnated(dist, d) {
			return iterations, false, true
		}

		dist = d
	}

	return iterations, dist <= c.cfg.Tolerance, false
}

// stagnated returns true unless the distance to the target shrank by more than
// rounding noise.
func stagnated(prev, d float64) bool {
	return d > prev-minImprovement
}

// forward pins the end effector to the target, then drags each joint back
// towards the one after it. The last two joints are left unconstrained.
func (c *Chain) forward(target math3d.Vector3) {
	p := c.positions
	o := c.orientations
	n := len(p)

	p[n-1] = target

	for i := n - 2; i >= 0; i-- {
		p[i] = c.toward(p[i+1], p[i], c.lengths[i], c.forwardOf(o[i]).MultiplyByScalar(-1))

		if i <= n-3 {
			seg := p[i+1].Subtract(p[i])
			dir := ClampDirection(c.forwardOf(o[i+1]), seg, c.cfg.MaxAngle)
			if dir != seg {
				p[i] = p[i+1].Subtract(dir.Unit().MultiplyByScalar(c.lengths[i]))
			}
		}

		o[i] = c.turn(o[i], p[i+1].Subtract(p[i]))
	}
}

// backward starts from the (restored) root, and pushes each joint out towards
// the one after it. The direction of each segment is limited by the direction
// of the one before it, and the first by the orientation of the root.
func (c *Chain) backward() {
	p := c.positions
	o := c.orientations

	ref := c.forwardOf(o[0])

	for i := 0; i < len(p)-1; i++ {
		p[i+1] = c.toward(p[i], p[i+1], c.lengths[i], c.forwardOf(o[i]))

		seg := p[i+1].Subtract(p[i])
		dir := ClampDirection(ref, seg, c.cfg.MaxAngle)
		if dir != seg {
			p[i+1] = p[i].Add(dir.Unit().MultiplyByScalar(c.lengths[i]))
		}

		// Orientations are carried along incrementally rather than rebuilt, so
		// the twist of each joint survives into the next iteration.
		o[i] = c.turn(o[i], dir)
		ref = c.forwardOf(o[i])
	}
}

// toward returns the point which is the given length from anchor, in the
// direction of p. If p is on top of the anchor there is no direction, so the
// fallback is used instead.
func (c *Chain) toward(anchor, p math3d.Vector3, length float64, fallback math3d.Vector3) math3d.Vector3 {
	d := anchor.Distance(p)
	if geom.Zeroish(d) {
		return anchor.Add(fallback.Unit().MultiplyByScalar(length))
	}
	return anchor.Lerp(p, length/d)
}

// forwardOf returns the world direction of the segment axis of a joint with
// the given orientation.
func (c *Chain) forwardOf(q math3d.Quaternion) math3d.Vector3 {
	return q.Forward(c.cfg.Axis).Unit()
}

// turn returns q, rotated by the shortest arc which points its segment axis
// along dir.
func (c *Chain) turn(q math3d.Quaternion, dir math3d.Vector3) math3d.Quaternion {
	return math3d.FromToRotation(c.forwardOf(q), dir).Mul(q).Normalize()
}

// apply writes the working poses back to the joints. The root keeps its
// position but turns to face the next joint; the end effector has nothing to
// face, so only its position is written.
func (c *Chain) apply() {
	p := c.positions
	n := len(p)

	for i := 0; i < n-1; i++ {
		c.orientations[i] = math3d.FromToRotation(c.cfg.Axis, p[i+1].Subtract(p[i]))
	}

	c.joints[0].SetOrientation(c.orientations[0])
	for i := 1; i < n-1; i++ {
		c.joints[i].SetPositionAndOrientation(p[i], c.orientations[i])
	}
	c.joints[n-1].SetPosition(p[n-1])
	c.orientations[n-1] = c.joints[n-1].Orientation()
}
