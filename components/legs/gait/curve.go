package gait

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (

	// The number of points at which curves are sampled when validated.
	curveSamples = 64

	// Slack allowed when checking the endpoints of curves.
	curveEpsilon = 1e-9
)

var (
	ErrInvalidCurve = errors.New("invalid curve")
)

// Curve maps a scalar (usually time) to another scalar. Curves are defined
// from zero to End, and clamp outside of that.
type Curve interface {
	Evaluate(t float64) float64
	End() float64
}

// Key is a single sample of a curve.
type Key struct {
	Time  float64
	Value float64
}

// Keys is a curve which linearly interpolates between samples. The keys must
// be sorted by time.
type Keys []Key

func (k Keys) Evaluate(t float64) float64 {
	if len(k) == 0 {
		return 0
	}

	if t <= k[0].Time {
		return k[0].Value
	}

	last := k[len(k)-1]
	if t >= last.Time {
		return last.Value
	}

	// The first key after t. Never zero, because of the check above.
	i := sort.Search(len(k), func(i int) bool { return k[i].Time > t })
	a := k[i-1]
	b := k[i]

	r := (t - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*r
}

func (k Keys) End() float64 {
	if len(k) == 0 {
		return 0
	}
	return k[len(k)-1].Time
}

// Ease goes from zero to one over the duration, starting and finishing slowly.
// It's half a cosine wave, so feet accelerate off the ground and decelerate
// onto it.
type Ease struct {
	Duration float64
}

func (e Ease) Evaluate(t float64) float64 {
	x := clamp(t/e.Duration, 0, 1)
	return 0.5 - (math.Cos(x*math.Pi) / 2)
}

func (e Ease) End() float64 {
	return e.Duration
}

// Arc lifts a foot from zero to Height and back to zero over a progress ratio
// from zero to one.
type Arc struct {
	Height float64
}

func (a Arc) Evaluate(p float64) float64 {
	return a.Height * math.Sin(clamp(p, 0, 1)*math.Pi)
}

func (a Arc) End() float64 {
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ValidateTimeScale returns an error unless the curve maps zero to zero and
// its end to one, never decreasing in between.
func ValidateTimeScale(c Curve) error {
	if c == nil {
		return fmt.Errorf("%w: time scale is missing", ErrInvalidCurve)
	}

	end := c.End()
	if !(end > 0) || math.IsInf(end, 0) {
		return fmt.Errorf("%w: time scale must end after zero, got %v", ErrInvalidCurve, end)
	}

	if v := c.Evaluate(0); math.Abs(v) > curveEpsilon {
		return fmt.Errorf("%w: time scale must start at zero, got %v", ErrInvalidCurve, v)
	}

	if v := c.Evaluate(end); math.Abs(v-1) > curveEpsilon {
		return fmt.Errorf("%w: time scale must end at one, got %v", ErrInvalidCurve, v)
	}

	prev := 0.0
	for i := 1; i <= curveSamples; i++ {
		t := end * float64(i) / curveSamples
		v := c.Evaluate(t)
		if v < prev-curveEpsilon {
			return fmt.Errorf("%w: time scale decreases at t=%0.3f", ErrInvalidCurve, t)
		}
		prev = v
	}

	return nil
}

// ValidateHeight returns an error unless the curve is zero at zero and one,
// and never negative in between.
func ValidateHeight(c Curve) error {
	if c == nil {
		return fmt.Errorf("%w: height is missing", ErrInvalidCurve)
	}

	for _, p := range []float64{0, 1} {
		if v := c.Evaluate(p); math.Abs(v) > curveEpsilon {
			return fmt.Errorf("%w: height must be zero at %v, got %v", ErrInvalidCurve, p, v)
		}
	}

	for i := 1; i < curveSamples; i++ {
		p := float64(i) / curveSamples
		if v := c.Evaluate(p); v < -curveEpsilon {
			return fmt.Errorf("%w: height is negative at p=%0.3f", ErrInvalidCurve, p)
		}
	}

	return nil
}
