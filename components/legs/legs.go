package legs

import (
	"errors"
	"fmt"
	"time"

	"github.com/adammck/quadruped/components/legs/gait"
	"github.com/adammck/quadruped/ik"
	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/scene"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoLegs = errors.New("no legs are enabled")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "legs",
})

// The corners of the body, in the order which legs are allowed to step when
// more than one wants to.
var corners = []struct {
	name string
	side gait.Side
	end  gait.End
}{
	{"LF", gait.Left, gait.Front},
	{"RF", gait.Right, gait.Front},
	{"LB", gait.Left, gait.Back},
	{"RB", gait.Right, gait.Back},
}

type Legs struct {
	Legs []*Leg
	Gait *gait.Coordinator
}

// New builds four legs under the body, mirrored from the given geometry, and a
// gait to step them.
func New(body *scene.Transform, geo Geometry, ikc ik.Config, gc gait.Config) (*Legs, error) {
	l := &Legs{
		Legs: make([]*Leg, len(corners)),
	}

	gl := make([]gait.Leg, len(corners))
	for i, c := range corners {
		leg, err := NewLeg(body, c.name, geo.Mirror(c.side, c.end), ikc)
		if err != nil {
			return nil, fmt.Errorf("leg %s: %w", c.name, err)
		}

		l.Legs[i] = leg
		gl[i] = gait.Leg{Limb: leg.Chain, Offset: leg.Rest}
	}

	g, err := gait.New(body, gl, gc)
	if err != nil {
		return nil, err
	}

	l.Gait = g
	return l, nil
}

// Boot logs the shape of each leg. Legs which couldn't be set up are left
// disabled, but don't stop the others.
func (l *Legs) Boot() error {
	for _, leg := range l.Legs {
		if !leg.Chain.Enabled() {
			log.Warnf("%s: disabled", leg.Name)
			continue
		}

		log.Infof("%s: joints=%d reach=%0.2f foot=%s", leg.Name, len(leg.Joints), leg.Chain.TotalLength(), leg.Foot())
	}

	return nil
}

// Tick moves the targets along the gait, and then moves each leg towards its
// target.
func (l *Legs) Tick(dt time.Duration) error {
	err := l.Gait.Tick(dt)
	if err != nil {
		return fmt.Errorf("gait: %w", err)
	}

	for _, leg := range l.Legs {
		err := leg.Chain.Tick(dt)
		if err != nil {
			log.Warnf("%s: %s", leg.Name, err)
			continue
		}

		log.Debugf("%s target=%s foot=%s dist=%0.3f", leg.Name, leg.Chain.Target(), leg.Foot(), leg.Foot().Distance(leg.Chain.Target()))
	}

	return nil
}

// Feet returns the world position of each foot.
func (l *Legs) Feet() []math3d.Vector3 {
	out := make([]math3d.Vector3, len(l.Legs))
	for i, leg := range l.Legs {
		out[i] = leg.Foot()
	}
	return out
}

// TrackingError returns the greatest distance between any enabled foot and its
// target.
func (l *Legs) TrackingError() (float64, error) {
	worst := 0.0
	n := 0

	for _, leg := range l.Legs {
		if !leg.Chain.Enabled() {
			continue
		}

		n += 1
		d := leg.Foot().Distance(leg.Chain.Target())
		if d > worst {
			worst = d
		}
	}

	if n == 0 {
		return 0, ErrNoLegs
	}

	return worst, nil
}
