package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adammck/quadruped"
	"github.com/adammck/quadruped/components/controller"
	"github.com/adammck/quadruped/components/legs"
	"github.com/adammck/quadruped/components/tracking"
	"github.com/adammck/quadruped/config"
	"github.com/spf13/cobra"
)

var (
	runTicks    int
	runRealtime bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Long: `Run the simulation for a number of ticks, then log where the feet ended up.

By default ticks are run back to back as fast as possible. With --realtime,
they're spaced out by the tick rate, and the loop runs until interrupted if
--ticks is zero.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runTicks, "ticks", "n", 600, "number of ticks to run (zero means forever, with --realtime)")
	runCmd.Flags().BoolVar(&runRealtime, "realtime", false, "tick at the configured rate rather than as fast as possible")
	rootCmd.AddCommand(runCmd)
}

type sim struct {
	q        *quadruped.Quadruped
	legs     *legs.Legs
	interval time.Duration
}

// newSim builds a quadruped and its components from the config. The controller
// moves the body before the legs catch up with it.
func newSim(cfg config.Config) (*sim, error) {
	q := quadruped.New(cfg.BodyPose())

	l, err := legs.New(q.Body, cfg.Geometry(), cfg.IKConfig(), cfg.GaitConfig())
	if err != nil {
		return nil, err
	}

	q.Add(controller.New(q.Body, cfg.Controller.Speed, cfg.Controller.TurnRate))
	q.Add(l)
	chk := tracking.New(l, time.Duration(cfg.Tracking.Interval*float64(time.Second)), cfg.Tracking.MaxError)
	if cfg.Tracking.StopOnLag {
		chk.Stopper = q
	}
	q.Add(chk)

	return &sim{
		q:        q,
		legs:     l,
		interval: cfg.TickInterval(),
	}, nil
}

// loop ticks the simulation until it's run the given number of ticks (if
// positive), the context is done, or a component requests a shutdown.
func (s *sim) loop(ctx context.Context, ticks int, realtime bool) {
	var c <-chan time.Time
	if realtime {
		t := time.NewTicker(s.interval)
		defer t.Stop()
		c = t.C
	}

	for ticks <= 0 || s.q.Ticks < ticks {
		if s.q.Shutdown {
			log.Infof("shutdown requested")
			return
		}

		if c != nil {
			select {
			case <-ctx.Done():
				log.Infof("caught signal, shutting down")
				return
			case <-c:
			}
		} else if ctx.Err() != nil {
			return
		}

		s.q.Tick(s.interval)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	if runTicks <= 0 && !runRealtime {
		return fmt.Errorf("--ticks must be positive unless --realtime is set")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	s, err := newSim(cfg)
	if err != nil {
		return err
	}

	err = s.q.Boot()
	if err != nil {
		return fmt.Errorf("error while booting: %w", err)
	}

	// Catch both SIGINT (ctrl+c) and SIGTERM, to finish the tick in progress
	// and log where everything ended up.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("running: ticks=%d interval=%v realtime=%v", runTicks, s.interval, runRealtime)
	s.loop(ctx, runTicks, runRealtime)

	log.Infof("done: ticks=%d elapsed=%v body=%s", s.q.Ticks, s.q.Elapsed, s.q.Body.Position())
	for _, leg := range s.legs.Legs {
		log.Infof("%s foot=%s target=%s", leg.Name, leg.Foot(), leg.Chain.Target())
	}

	return nil
}
