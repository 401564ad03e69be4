package ik

import (
	"fmt"
	"math"

	"github.com/adammck/quadruped/math3d"
	"zappem.net/pub/math/geom"
)

const (

	// Solvers which haven't converged after this many forward and backward
	// passes give up and apply whatever they have.
	defaultMaxIterations = 30

	// The widest a joint may bend, relative to the segment before it.
	defaultMaxAngle = 45.0

	// Distance (in world units) from the target at which the end effector is
	// considered to have reached it.
	defaultTolerance = 0.001

	// Iterations which reduce the distance to the target by less than this are
	// considered to have stagnated. This only exists to absorb rounding noise.
	minImprovement = 1e-9
)

// Config holds the tunables of a chain. It's validated once, when the chain is
// constructed.
type Config struct {
	Tolerance     float64
	MaxIterations int
	MaxAngle      geom.Angle

	// The joint-local direction which points along the segment towards the
	// next joint.
	Axis math3d.Vector3
}

// DefaultConfig returns the configuration which chains should use unless
// there is good reason not to.
func DefaultConfig() Config {
	return Config{
		Tolerance:     defaultTolerance,
		MaxIterations: defaultMaxIterations,
		MaxAngle:      geom.Degrees(defaultMaxAngle),
		Axis:          math3d.Forward,
	}
}

// Validate returns an error if the configuration can't be used.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidConfig, c.Tolerance)
	}

	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least one, got %d", ErrInvalidConfig, c.MaxIterations)
	}

	if c.MaxAngle < 0 || float64(c.MaxAngle) > math.Pi {
		return fmt.Errorf("%w: max angle must be within [0°, 180°], got %.2f°", ErrInvalidConfig, math3d.Deg(float64(c.MaxAngle)))
	}

	if geom.Zeroish(c.Axis.Magnitude()) || !c.Axis.Finite() {
		return fmt.Errorf("%w: axis must be a finite, non-zero vector, got %s", ErrInvalidConfig, c.Axis)
	}

	return nil
}
