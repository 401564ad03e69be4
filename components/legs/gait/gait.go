// Package gait decides when and where each foot steps. Only one leg steps at a
// time; the rest stay planted while the body moves over them.
package gait

import (
	"errors"
	"fmt"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/sirupsen/logrus"
)

type State string

const (
	Idle     State = "idle"
	Stepping State = "stepping"
)

var (
	ErrInvalidConfig = errors.New("invalid gait config")
	ErrNegativeTick  = errors.New("negative tick duration")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

// Limb is something with a foot which can be pointed at a target, such as an
// IK chain.
type Limb interface {
	Name() string
	Target() math3d.Vector3
	SetTarget(math3d.Vector3)
}

// Anchor is the frame which the resting offsets are relative to. Usually the
// body.
type Anchor interface {
	TransformPoint(math3d.Vector3) math3d.Vector3
}

// Leg is a limb and the point (in the anchor space) which its foot rests at.
type Leg struct {
	Limb   Limb
	Offset math3d.Vector3
}

type Config struct {

	// How far (in world units) a target can drift from its rest point before
	// the leg steps to correct it.
	TriggerDistance float64

	// Maps seconds since the start of a step to progress between zero and one.
	// Its end is the duration of each step.
	TimeScale Curve

	// Maps progress to the height which the foot is lifted.
	Height Curve

	// The direction which feet are lifted in.
	Up math3d.Vector3
}

// DefaultConfig returns a half-second step, lifting the foot two units.
func DefaultConfig() Config {
	return Config{
		TriggerDistance: 1.5,
		TimeScale:       Ease{Duration: 0.5},
		Height:          Arc{Height: 2},
		Up:              math3d.Up,
	}
}

func (c Config) Validate() error {
	if !(c.TriggerDistance >= 0) {
		return fmt.Errorf("%w: trigger distance must not be negative, got %v", ErrInvalidConfig, c.TriggerDistance)
	}

	if err := ValidateTimeScale(c.TimeScale); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := ValidateHeight(c.Height); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Up.Zero() || !c.Up.Finite() {
		return fmt.Errorf("%w: up must be a finite non-zero vector, got %s", ErrInvalidConfig, c.Up)
	}

	return nil
}

// LegState is a copy of the coordinator's view of a single leg, for debugging.
type LegState struct {
	Name     string
	Rest     math3d.Vector3
	Target   math3d.Vector3
	Distance float64
	Active   bool
}

type Coordinator struct {
	anchor Anchor
	legs   []Leg
	cfg    Config
	up     math3d.Vector3

	state  State
	active int

	// Time since the active leg started stepping, and the world positions which
	// it is stepping between.
	elapsed     time.Duration
	origin      math3d.Vector3
	destination math3d.Vector3
}

// New returns a coordinator for the given legs, which should be ordered by
// priority. When more than one leg needs to step, the first one wins.
func New(anchor Anchor, legs []Leg, cfg Config) (*Coordinator, error) {
	if anchor == nil {
		return nil, fmt.Errorf("%w: anchor is missing", ErrInvalidConfig)
	}

	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: no legs", ErrInvalidConfig)
	}

	for i, l := range legs {
		if l.Limb == nil {
			return nil, fmt.Errorf("%w: leg %d has no limb", ErrInvalidConfig, i)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Coordinator{
		anchor: anchor,
		legs:   legs,
		cfg:    cfg,
		up:     cfg.Up.Unit(),
		state:  Idle,
		active: -1,
	}, nil
}

func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) setState(s State) {
	log.Infof("state=%v", s)
	c.state = s
}

// Active returns the index of the leg which is stepping, if any.
func (c *Coordinator) Active() (int, bool) {
	return c.active, c.active >= 0
}

// StepDuration returns how long each step takes.
func (c *Coordinator) StepDuration() time.Duration {
	return time.Duration(c.cfg.TimeScale.End() * float64(time.Second))
}

// RestPoint returns the present world position at which leg i would like its
// foot to be.
func (c *Coordinator) RestPoint(i int) math3d.Vector3 {
	return c.anchor.TransformPoint(c.legs[i].Offset)
}

func (c *Coordinator) Snapshot() []LegState {
	out := make([]LegState, len(c.legs))
	for i, l := range c.legs {
		rest := c.RestPoint(i)
		target := l.Limb.Target()
		out[i] = LegState{
			Name:     l.Limb.Name(),
			Rest:     rest,
			Target:   target,
			Distance: target.Distance(rest),
			Active:   i == c.active,
		}
	}
	return out
}

// Tick advances the gait by dt. When idle, it picks the first leg which has
// drifted too far from its rest point and starts it stepping. When stepping,
// it moves the active leg's target along the step, and finishes the step once
// the duration has passed.
func (c *Coordinator) Tick(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTick, dt)
	}

	switch c.state {
	case Idle:
		for i, l := range c.legs {
			rest := c.RestPoint(i)
			target := l.Limb.Target()

			if target.Distance(rest) > c.cfg.TriggerDistance {
				c.active = i
				c.elapsed = 0
				c.origin = target
				c.destination = rest
				log.Infof("%s: stepping from %s to %s", l.Limb.Name(), c.origin, c.destination)
				c.setState(Stepping)
				break
			}
		}

	case Stepping:
		l := c.legs[c.active]
		c.elapsed += dt
		s := c.elapsed.Seconds()

		// The step is over, so put the foot down exactly where it was headed.
		// The next leg can start on the following tick.
		if s >= c.cfg.TimeScale.End() {
			l.Limb.SetTarget(c.destination)
			log.Infof("%s: step complete at %s", l.Limb.Name(), c.destination)
			c.active = -1
			c.setState(Idle)
			break
		}

		p := c.cfg.TimeScale.Evaluate(s)
		h := c.cfg.Height.Evaluate(p)
		v := c.origin.Lerp(c.destination, p).Add(c.up.MultiplyByScalar(h))
		l.Limb.SetTarget(v)
		log.Debugf("%s: progress=%0.3f height=%0.3f target=%s", l.Limb.Name(), p, h, v)

	default:
		return fmt.Errorf("unknown state: %#v", c.state)
	}

	return nil
}
