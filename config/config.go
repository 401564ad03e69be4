// Package config loads the settings of a simulation from TOML, and converts
// them into the configs of each package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adammck/quadruped/components/legs"
	"github.com/adammck/quadruped/components/legs/gait"
	"github.com/adammck/quadruped/ik"
	"github.com/adammck/quadruped/math3d"
	"zappem.net/pub/math/geom"
)

var (
	ErrInvalid = errors.New("invalid config")
)

type Config struct {

	// Ticks per second.
	TickRate int `toml:"tick_rate"`

	Body       Body       `toml:"body"`
	Leg        Leg        `toml:"leg"`
	Chain      Chain      `toml:"chain"`
	Gait       Gait       `toml:"gait"`
	Controller Controller `toml:"controller"`
	Tracking   Tracking   `toml:"tracking"`
}

type Body struct {
	Height  float64 `toml:"height"`
	Heading float64 `toml:"heading"` // degrees
}

type Leg struct {

	// Joints of the right-front leg, from hip to foot, in the body space.
	Joints [][3]float64 `toml:"joints"`
}

type Chain struct {
	Tolerance     float64 `toml:"tolerance"`
	MaxIterations int     `toml:"max_iterations"`
	MaxAngle      float64 `toml:"max_angle"` // degrees
}

type Gait struct {
	TriggerDistance float64 `toml:"trigger_distance"`

	// Used to build an eased step and an arched lift, unless keys are given.
	StepDuration float64 `toml:"step_duration"` // seconds
	StepHeight   float64 `toml:"step_height"`

	// Optional [time, value] keys, which replace the curves above.
	TimeScale [][2]float64 `toml:"time_scale"`
	Height    [][2]float64 `toml:"height"`
}

type Controller struct {
	Speed    float64 `toml:"speed"`
	TurnRate float64 `toml:"turn_rate"` // degrees per second
}

type Tracking struct {
	Interval float64 `toml:"interval"` // seconds
	MaxError float64 `toml:"max_error"`

	// Stop the simulation when the feet lag too far, rather than only
	// logging it.
	StopOnLag bool `toml:"stop_on_lag"`
}

// Default returns a config which walks slowly forwards in a wide circle.
func Default() Config {
	ikc := ik.DefaultConfig()
	gc := gait.DefaultConfig()

	c := Config{
		TickRate: 60,
		Body: Body{
			Height: 4.6,
		},
		Chain: Chain{
			Tolerance:     ikc.Tolerance,
			MaxIterations: ikc.MaxIterations,
			MaxAngle:      math3d.Deg(float64(ikc.MaxAngle)),
		},
		Gait: Gait{
			TriggerDistance: gc.TriggerDistance,
			StepDuration:    0.5,
			StepHeight:      2,
		},
		Controller: Controller{
			Speed:    1,
			TurnRate: 5,
		},
		Tracking: Tracking{
			Interval: 1,
			MaxError: 2,
		},
	}

	for _, j := range legs.DefaultGeometry().Joints {
		c.Leg.Joints = append(c.Leg.Joints, [3]float64{j.X, j.Y, j.Z})
	}

	return c
}

// Load reads a TOML file over the defaults, and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults, and validates the result. Unknown keys
// are rejected, since they're usually typos.
func Parse(data []byte) (Config, error) {
	c := Default()

	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, fmt.Errorf("parsing TOML: %w", err)
	}

	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if c.TickRate < 1 {
		return fmt.Errorf("%w: tick_rate must be at least 1, got %d", ErrInvalid, c.TickRate)
	}

	if len(c.Leg.Joints) < 2 {
		return fmt.Errorf("%w: leg needs at least two joints, got %d", ErrInvalid, len(c.Leg.Joints))
	}

	if !(c.Tracking.Interval > 0) {
		return fmt.Errorf("%w: tracking interval must be positive, got %v", ErrInvalid, c.Tracking.Interval)
	}

	if err := c.IKConfig().Validate(); err != nil {
		return fmt.Errorf("%w: chain: %w", ErrInvalid, err)
	}

	if err := c.GaitConfig().Validate(); err != nil {
		return fmt.Errorf("%w: gait: %w", ErrInvalid, err)
	}

	return nil
}

// TickInterval returns the simulated time between ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// BodyPose returns the starting pose of the body.
func (c Config) BodyPose() math3d.Pose {
	return math3d.MakePose(
		math3d.MakeVector3(0, c.Body.Height, 0),
		math3d.MakeSingularEulerAngle(math3d.RotationHeading, c.Body.Heading))
}

func (c Config) Geometry() legs.Geometry {
	g := legs.Geometry{Joints: make([]math3d.Vector3, len(c.Leg.Joints))}
	for i, j := range c.Leg.Joints {
		g.Joints[i] = math3d.MakeVector3(j[0], j[1], j[2])
	}
	return g
}

func (c Config) IKConfig() ik.Config {
	ikc := ik.DefaultConfig()
	ikc.Tolerance = c.Chain.Tolerance
	ikc.MaxIterations = c.Chain.MaxIterations
	ikc.MaxAngle = geom.Degrees(c.Chain.MaxAngle)
	return ikc
}

func (c Config) GaitConfig() gait.Config {
	gc := gait.DefaultConfig()
	gc.TriggerDistance = c.Gait.TriggerDistance
	gc.TimeScale = gait.Ease{Duration: c.Gait.StepDuration}
	gc.Height = gait.Arc{Height: c.Gait.StepHeight}

	if len(c.Gait.TimeScale) > 0 {
		gc.TimeScale = keys(c.Gait.TimeScale)
	}

	if len(c.Gait.Height) > 0 {
		gc.Height = keys(c.Gait.Height)
	}

	return gc
}

func keys(kk [][2]float64) gait.Keys {
	out := make(gait.Keys, len(kk))
	for i, k := range kk {
		out[i] = gait.Key{Time: k[0], Value: k[1]}
	}
	return out
}
