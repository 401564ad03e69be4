package controller

import (
	"math"
	"time"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "controller",
})

// Controller drives the body around at a constant speed and rate of turn. The
// legs have to step to keep up.
type Controller struct {
	body *scene.Transform

	// Movement speed along the body's forward axis, in units per second.
	Speed float64

	// Rate of turn, in degrees per second. Positive turns right.
	TurnRate float64

	ea math3d.EulerAngles
}

func New(body *scene.Transform, speed float64, turnRate float64) *Controller {
	return &Controller{
		body:     body,
		Speed:    speed,
		TurnRate: turnRate,
	}
}

// Boot reads the initial heading from the body. Pitch and bank are discarded,
// since the body stays level.
func (c *Controller) Boot() error {
	f := c.body.Orientation().Forward(math3d.Forward)
	c.ea = math3d.EulerAngles{Heading: math.Atan2(f.X, f.Z)}
	log.Infof("speed=%0.2f turn=%0.2f heading=%s", c.Speed, c.TurnRate, c.ea)
	return nil
}

// Heading returns the present heading of the body, in degrees.
func (c *Controller) Heading() float64 {
	return math3d.Deg(c.ea.Heading)
}

func (c *Controller) Tick(dt time.Duration) error {
	s := dt.Seconds()

	if c.TurnRate != 0 {
		c.ea.Heading += math3d.Rad(c.TurnRate * s)
	}

	q := c.ea.Quaternion()

	// How far the body should move this frame, in its own space.
	vecMove := math3d.MakeVector3(0, 0, c.Speed*s)
	pos := c.body.Position().Add(q.Rotate(vecMove))

	c.body.SetPositionAndOrientation(pos, q)
	log.Debugf("body=%s heading=%s", pos, c.ea)

	return nil
}
