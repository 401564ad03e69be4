package tracking

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "tracking",
})

// Stopper is something which can be asked to stop, like the main loop.
type Stopper interface {
	Stop(reason string)
}

// HasTrackingError is something which knows how far its feet are from where
// they should be.
type HasTrackingError interface {
	TrackingError() (float64, error)
}

// Check periodically measures how far the feet are lagging behind their
// targets, and complains if it's too far. A foot which can't keep up usually
// means that the legs are too short for the gait, or the joints too stiff.
type Check struct {
	HasTrackingError

	// How often to check, in simulated time.
	Interval time.Duration

	// The distance beyond which an error is returned.
	Maximum float64

	// If set, feet which lag too far also stop the loop.
	Stopper Stopper

	since time.Duration
}

func New(src HasTrackingError, interval time.Duration, maximum float64) *Check {
	return &Check{
		HasTrackingError: src,
		Interval:         interval,
		Maximum:          maximum,
	}
}

func (c *Check) Boot() error {
	if c.Interval <= 0 {
		return fmt.Errorf("tracking interval must be positive, got %v", c.Interval)
	}

	return nil
}

func (c *Check) Tick(dt time.Duration) error {
	c.since += dt

	if c.NeedsCheck() {
		return c.CheckTracking()
	}

	return nil
}

// NeedsCheck returns true if an interval has passed since the last check.
func (c *Check) NeedsCheck() bool {
	return c.since >= c.Interval
}

// CheckTracking fetches the tracking error, and returns an error if it's too
// high.
func (c *Check) CheckTracking() error {
	val, err := c.TrackingError()
	c.since = 0
	if err != nil {
		return err
	}

	log.Infof("tracking error: %.3f", val)

	if val > c.Maximum {
		err := fmt.Errorf("feet are lagging: %.3f > %.3f", val, c.Maximum)
		if c.Stopper != nil {
			c.Stopper.Stop(err.Error())
		}
		return err
	}

	return nil
}
