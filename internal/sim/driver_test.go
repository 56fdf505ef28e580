package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

type constPilot struct {
	flap  bool
	calls int
	seen  flappy.Snapshot // Last snapshot passed to Decide
}

func (p *constPilot) Decide(snap flappy.Snapshot) bool {
	p.calls++
	p.seen = snap
	return p.flap
}

func newTestDriver(t *testing.T, opts ...DriverOption) *Driver {
	t.Helper()
	g, err := flappy.New(config.DefaultFlappyConfig(), flappy.WithSeed(7))
	if err != nil {
		t.Fatalf("flappy.New() failed: %v", err)
	}
	return NewDriver(g, 60, opts...)
}

func TestSendAppliesAtNextTick(t *testing.T) {
	d := newTestDriver(t)

	d.Send(core.CommandTogglePause)
	if d.Snapshot().Mode != flappy.ModeRunning {
		t.Fatal("command must not apply before the next tick")
	}

	d.Step()
	if d.Snapshot().Mode != flappy.ModePaused {
		t.Errorf("mode = %v, expected paused", d.Snapshot().Mode)
	}
}

func TestSendIgnoresNone(t *testing.T) {
	rec := NewRecording(7, config.DefaultFlappyConfig(), "human")
	d := newTestDriver(t, WithRecording(rec))

	d.Send(core.CommandNone)
	d.Step()

	if len(rec.Events) != 0 {
		t.Errorf("events = %v, expected none", rec.Events)
	}
}

func TestSnapshotPublishedEveryTick(t *testing.T) {
	var hooked int
	d := newTestDriver(t, WithTickHook(func(flappy.Snapshot, flappy.StepResult) { hooked++ }))

	d.Step()
	if d.Snapshot().Tick != 1 {
		t.Errorf("tick = %d, expected 1", d.Snapshot().Tick)
	}

	d.Send(core.CommandTogglePause)
	for i := 0; i < 5; i++ {
		d.Step()
	}

	if hooked != 6 || d.Frames() != 6 {
		t.Errorf("hooked=%d frames=%d, expected 6/6", hooked, d.Frames())
	}
	if d.Snapshot().Tick != 1 {
		t.Errorf("paused ticks advanced the world to tick %d", d.Snapshot().Tick)
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	d := newTestDriver(t)

	if n := d.Advance(10 * time.Millisecond); n != 0 {
		t.Errorf("Advance(10ms) = %d, expected 0", n)
	}
	if n := d.Advance(10 * time.Millisecond); n != 1 {
		t.Errorf("Advance(10ms) = %d, expected 1 after accumulating", n)
	}
	if n := d.Advance(3 * d.Interval()); n != 3 {
		t.Errorf("Advance(3 ticks) = %d, expected 3", n)
	}
	if d.Frames() != 4 {
		t.Errorf("frames = %d, expected 4", d.Frames())
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	d := newTestDriver(t)

	if n := d.Advance(time.Second); n != maxCatchUpTicks {
		t.Errorf("Advance(1s) = %d, expected %d", n, maxCatchUpTicks)
	}
	if n := d.Advance(0); n != 0 {
		t.Errorf("Advance(0) = %d, expected the excess to be dropped", n)
	}
}

func TestSendConcurrent(t *testing.T) {
	rec := NewRecording(7, config.DefaultFlappyConfig(), "human")
	d := newTestDriver(t, WithRecording(rec))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Send(core.CommandTogglePause)
			}
		}()
	}
	wg.Wait()

	d.Step()

	if len(rec.Events) != 1000 {
		t.Errorf("events = %d, expected 1000", len(rec.Events))
	}
	if d.Snapshot().Mode != flappy.ModeRunning {
		t.Errorf("mode = %v, expected running after an even number of toggles", d.Snapshot().Mode)
	}
}

func TestPilotFlaps(t *testing.T) {
	pilot := &constPilot{flap: true}
	d := newTestDriver(t, WithPilot(pilot))

	d.Step()

	phys := config.DefaultFlappyConfig().Physics
	want := phys.JumpVelocity
	want += phys.Gravity
	if v := d.Snapshot().Body.Velocity; v != want {
		t.Errorf("velocity = %v, expected %v after a pilot flap", v, want)
	}
}

func TestPilotSkippedOutsideRunning(t *testing.T) {
	pilot := &constPilot{flap: true}
	d := newTestDriver(t, WithPilot(pilot))

	d.Send(core.CommandTogglePause)
	d.Step()
	d.Step()

	if pilot.calls != 0 {
		t.Errorf("pilot consulted %d times while paused", pilot.calls)
	}
}

func TestPilotSeesCommandsAppliedThisTick(t *testing.T) {
	t.Run("restart after game over", func(t *testing.T) {
		pilot := &constPilot{}
		d := newTestDriver(t, WithPilot(pilot))
		for i := 0; i < 200 && d.Snapshot().Mode != flappy.ModeGameOver; i++ {
			d.Step()
		}
		if d.Snapshot().Mode != flappy.ModeGameOver {
			t.Fatal("body should hit the ground without flapping")
		}

		d.Send(core.CommandRestart)
		d.Step()

		if pilot.seen.Mode != flappy.ModeRunning {
			t.Errorf("pilot saw mode %v, expected running", pilot.seen.Mode)
		}
		if pilot.seen.Body.Y != 308 || pilot.seen.Tick != 0 {
			t.Errorf("pilot saw y=%v tick=%d, expected the reset body at y=308 tick 0",
				pilot.seen.Body.Y, pilot.seen.Tick)
		}
	})

	t.Run("unpause", func(t *testing.T) {
		pilot := &constPilot{}
		d := newTestDriver(t, WithPilot(pilot))
		d.Send(core.CommandTogglePause)
		d.Step()
		calls := pilot.calls

		d.Send(core.CommandTogglePause)
		d.Step()

		if pilot.calls != calls+1 || pilot.seen.Mode != flappy.ModeRunning {
			t.Errorf("calls=%d mode=%v, expected one call seeing running", pilot.calls-calls, pilot.seen.Mode)
		}
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	d := newTestDriver(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := d.Run(ctx)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, expected deadline exceeded", err)
	}
	if d.Frames() == 0 {
		t.Error("Run() should have ticked at least once")
	}
}

func TestDriverLogsGameOver(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDriver(t, WithLogger(log.New(&buf)))

	for i := 0; i < 200 && d.Snapshot().Mode != flappy.ModeGameOver; i++ {
		d.Step()
	}

	if d.Snapshot().Mode != flappy.ModeGameOver {
		t.Fatal("body should hit the ground without flapping")
	}
	if !strings.Contains(buf.String(), "game over") {
		t.Errorf("log output = %q, expected a game over entry", buf.String())
	}
}
