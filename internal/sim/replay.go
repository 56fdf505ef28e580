package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ErrReplayMismatch is returned by Verify when a replay does not reproduce
// the recorded outcome.
var ErrReplayMismatch = errors.New("sim: replay does not match recording")

// Replay re-runs a recording on a fresh game seeded the same way and
// returns the final snapshot.
func Replay(rec *Recording) (flappy.Snapshot, error) {
	game, err := flappy.New(rec.Config, flappy.WithSeed(rec.Seed))
	if err != nil {
		return flappy.Snapshot{}, fmt.Errorf("sim: replay: %w", err)
	}

	events := make([]Event, len(rec.Events))
	copy(events, rec.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Frame < events[j].Frame
	})

	next := 0
	for frame := uint64(0); frame < rec.Frames; frame++ {
		for next < len(events) && events[next].Frame == frame {
			game.Apply(events[next].Command)
			next++
		}
		game.Step()
	}
	if next < len(events) {
		return flappy.Snapshot{}, fmt.Errorf("sim: replay: %d events after frame %d", len(events)-next, rec.Frames)
	}

	return game.Snapshot(), nil
}

// Verify replays rec and checks the final score, best and mode.
func Verify(rec *Recording) (flappy.Snapshot, error) {
	snap, err := Replay(rec)
	if err != nil {
		return snap, err
	}
	if snap.Score != rec.Score || snap.Best != rec.Best || snap.Mode != rec.Mode {
		return snap, fmt.Errorf("%w: got score=%d best=%d mode=%s, recorded score=%d best=%d mode=%s",
			ErrReplayMismatch, snap.Score, snap.Best, snap.Mode, rec.Score, rec.Best, rec.Mode)
	}
	return snap, nil
}
