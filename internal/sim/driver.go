// Package sim drives a flappy.Game at a fixed logical tick rate.
// It owns the command queue that input sources feed from any goroutine,
// publishes a snapshot after every tick, and optionally records every
// applied command so a run can be replayed later.
package sim

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// maxCatchUpTicks bounds how many ticks Advance runs for one elapsed span.
// Time beyond that is dropped rather than simulated.
const maxCatchUpTicks = 5

// Pilot is an automated input source consulted once per tick.
type Pilot interface {
	// Decide reports whether the body should flap, given the latest snapshot.
	Decide(snap flappy.Snapshot) bool
}

// Driver runs the simulation clock for one game.
type Driver struct {
	game     *flappy.Game
	tickRate int
	interval time.Duration
	logger   *log.Logger
	pilot    Pilot

	stepMu  sync.Mutex // Serializes ticks
	acc     time.Duration
	frames  uint64 // Ticks since the driver was created, never reset
	rec     *Recording
	onTick  func(flappy.Snapshot, flappy.StepResult)
	queueMu sync.Mutex
	queue   []core.Command

	snapMu sync.RWMutex
	snap   flappy.Snapshot
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger used for mode transitions.
func WithLogger(l *log.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithPilot attaches an automated input source.
func WithPilot(p Pilot) DriverOption {
	return func(d *Driver) {
		d.pilot = p
	}
}

// WithRecording makes the driver append every applied command to rec.
func WithRecording(rec *Recording) DriverOption {
	return func(d *Driver) {
		d.rec = rec
	}
}

// WithTickHook registers a callback invoked after every tick with the
// fresh snapshot. It runs on the ticking goroutine.
func WithTickHook(fn func(flappy.Snapshot, flappy.StepResult)) DriverOption {
	return func(d *Driver) {
		d.onTick = fn
	}
}

// NewDriver wraps a game. tickRate is in ticks per second.
func NewDriver(game *flappy.Game, tickRate int, opts ...DriverOption) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}

	d := &Driver{
		game:     game,
		tickRate: tickRate,
		interval: time.Second / time.Duration(tickRate),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.snap = game.Snapshot()
	return d
}

// TickRate returns the logical tick rate.
func (d *Driver) TickRate() int {
	return d.tickRate
}

// Interval returns the duration of one tick.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Game returns the driven game. Callers must not step it directly.
func (d *Driver) Game() *flappy.Game {
	return d.game
}

// Send queues a command for the start of the next tick.
// Safe for concurrent use.
func (d *Driver) Send(cmd core.Command) {
	if cmd == core.CommandNone {
		return
	}
	d.queueMu.Lock()
	d.queue = append(d.queue, cmd)
	d.queueMu.Unlock()
}

// Snapshot returns the snapshot published after the most recent tick.
// Safe for concurrent use.
func (d *Driver) Snapshot() flappy.Snapshot {
	d.snapMu.RLock()
	defer d.snapMu.RUnlock()
	return d.snap
}

// Frames returns the number of ticks run so far.
func (d *Driver) Frames() uint64 {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()
	return d.frames
}

// Step runs exactly one tick: drain queued commands, consult the pilot,
// simulate, publish the snapshot.
func (d *Driver) Step() flappy.StepResult {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()
	return d.stepLocked()
}

func (d *Driver) stepLocked() flappy.StepResult {
	before := d.game.Mode()

	for _, cmd := range d.drain() {
		d.apply(cmd)
	}
	if d.pilot != nil && d.game.Mode() == flappy.ModeRunning && d.pilot.Decide(d.game.Snapshot()) {
		d.apply(core.CommandFlap)
	}

	res := d.game.Step()
	d.frames++

	snap := d.game.Snapshot()
	d.snapMu.Lock()
	d.snap = snap
	d.snapMu.Unlock()

	d.logTransition(before, snap, res)
	if d.rec != nil {
		d.rec.finish(d.frames, snap)
	}
	if d.onTick != nil {
		d.onTick(snap, res)
	}
	return res
}

// Advance runs as many whole ticks as elapsed covers, carrying the
// remainder to the next call. Returns the number of ticks run.
func (d *Driver) Advance(elapsed time.Duration) int {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()

	d.acc += elapsed
	if limit := maxCatchUpTicks * d.interval; d.acc > limit {
		d.logger.Debug("dropping simulation time", "behind", d.acc-limit)
		d.acc = limit
	}

	n := 0
	for d.acc >= d.interval {
		d.stepLocked()
		d.acc -= d.interval
		n++
	}
	return n
}

// Run ticks the simulation in real time until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Advance(now.Sub(last))
			last = now
		}
	}
}

func (d *Driver) drain() []core.Command {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	if len(d.queue) == 0 {
		return nil
	}
	cmds := d.queue
	d.queue = nil
	return cmds
}

func (d *Driver) apply(cmd core.Command) {
	if d.rec != nil {
		d.rec.add(d.frames, cmd)
	}
	if cmd == core.CommandRestart {
		d.logger.Info("restart", "best", d.game.Snapshot().Best)
	}
	d.game.Apply(cmd)
}

func (d *Driver) logTransition(before flappy.Mode, snap flappy.Snapshot, res flappy.StepResult) {
	if res.Passed > 0 {
		d.logger.Debug("scored", "score", snap.Score, "best", snap.Best)
	}
	if before == snap.Mode {
		return
	}
	if snap.Mode == flappy.ModeGameOver {
		d.logger.Info("game over", "cause", res.Collision, "score", snap.Score, "best", snap.Best, "tick", snap.Tick)
		return
	}
	d.logger.Debug("mode changed", "from", before, "to", snap.Mode)
}
