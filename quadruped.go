// Package quadruped ties together a body and the components which move it.
package quadruped

import (
	"fmt"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "quadruped",
})

type Quadruped struct {
	Body       *scene.Transform
	Components []Component

	// Components can set this to true to indicate that the loop should stop.
	Shutdown bool

	// The number of ticks so far, and the simulated time which they add up to.
	Ticks   int
	Elapsed time.Duration
}

type Component interface {
	Boot() error
	Tick(time.Duration) error
}

// New creates a quadruped whose body starts at the given pose in the world.
func New(pose math3d.Pose) *Quadruped {
	return &Quadruped{
		Body:       scene.NewRoot("body", pose),
		Components: []Component{},
	}
}

// Add registers a component to receive ticks every frame. Components are
// ticked in the order they were added.
func (q *Quadruped) Add(c Component) {
	q.Components = append(q.Components, c)
}

// Boot calls Boot on each component, and stops at the first error.
func (q *Quadruped) Boot() error {
	for i, c := range q.Components {
		err := c.Boot()
		if err != nil {
			return fmt.Errorf("error while booting component #%d (%T): %w", i, c, err)
		}
	}

	return nil
}

// Stop asks the loop to shut down once the present tick is finished.
func (q *Quadruped) Stop(reason string) {
	log.Warnf("shutdown requested: %s", reason)
	q.Shutdown = true
}

// Tick calls Tick on each component. Errors are logged, but never stop the
// other components or the next tick.
func (q *Quadruped) Tick(dt time.Duration) {
	q.Ticks += 1
	q.Elapsed += dt

	for _, c := range q.Components {
		err := c.Tick(dt)
		if err != nil {
			log.Errorf("tick %d: %T: %s", q.Ticks, c, err)
		}
	}
}
