package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

var (
	simFlags        pilotFlags
	flagTicks       uint64
	flagRealtime    bool
	flagStopOnDeath bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation with a pilot",
	Long: `Run the game without a frontend, driven by a pilot, and print a
summary. By default ticks run as fast as possible; --realtime runs them
at the configured tick rate. After a game over the run restarts
unless --stop-on-death is set.

Examples:
  flappy sim --ticks 36000
  flappy sim --pilot lua --script scripts/hover.lua --record
  flappy sim --seed 7 --stop-on-death`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simFlags.register(simCmd, "bot")
	simCmd.Flags().Uint64Var(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick at the configured rate instead of flat out")
	simCmd.Flags().BoolVar(&flagStopOnDeath, "stop-on-death", false, "Stop at the first game over")
}

// simSummary accumulates what happened during a headless run.
type simSummary struct {
	ticks   uint64
	lives   int
	passed  int
	deaths  map[flappy.Collision]int
	stopped bool
	cancel  context.CancelFunc // Set in realtime mode
}

// observe is installed as the driver's tick hook.
func (s *simSummary) observe(d func() *sim.Driver) func(flappy.Snapshot, flappy.StepResult) {
	return func(_ flappy.Snapshot, res flappy.StepResult) {
		s.ticks++
		s.passed += res.Passed
		if res.Collision != flappy.CollisionNone {
			s.deaths[res.Collision]++
			if flagStopOnDeath {
				s.stopped = true
			} else {
				s.lives++
				d().Send(core.CommandRestart)
			}
		}
		if s.cancel != nil && s.done() {
			s.cancel()
		}
	}
}

func (s *simSummary) done() bool {
	return s.stopped || s.ticks >= flagTicks
}

func runSim(cmd *cobra.Command, args []string) {
	summary := &simSummary{lives: 1, deaths: make(map[flappy.Collision]int)}

	var sess *session
	hook := summary.observe(func() *sim.Driver { return sess.driver })
	sess, err := newSession(simFlags, os.Stderr, sim.WithTickHook(hook))
	if err != nil {
		fatal("%v", err)
	}

	start := time.Now()
	if flagRealtime {
		runRealtime(sess.driver, summary)
	} else {
		for !summary.done() {
			sess.driver.Step()
		}
	}
	elapsed := time.Since(start)

	snap := sess.driver.Snapshot()
	fmt.Printf("Seed:     %d\n", sess.seed)
	fmt.Printf("Pilot:    %s\n", simFlags.pilot)
	fmt.Printf("Ticks:    %d (%s)\n", sess.driver.Frames(), elapsed.Round(time.Millisecond))
	fmt.Printf("Lives:    %d\n", summary.lives)
	fmt.Printf("Passed:   %d\n", summary.passed)
	fmt.Printf("Best:     %d\n", snap.Best)
	fmt.Printf("Deaths:   ground=%d obstacle=%d\n",
		summary.deaths[flappy.CollisionGround], summary.deaths[flappy.CollisionObstacle])

	sess.finish()
}

// runRealtime runs the driver clock until the summary is done or the user
// interrupts.
func runRealtime(d *sim.Driver, summary *simSummary) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx, summary.cancel = context.WithCancel(ctx)
	defer summary.cancel()

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
