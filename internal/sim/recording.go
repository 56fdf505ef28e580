package sim

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Event is one command applied at the start of a driver frame.
type Event struct {
	Frame   uint64
	Command core.Command
}

// Recording captures everything needed to re-run a session: the seed,
// the configuration and every command in the order it was applied.
type Recording struct {
	Seed      int64
	Config    config.FlappyConfig
	Pilot     string
	StartedAt time.Time
	Events    []Event

	// Final state, updated after every tick
	Frames uint64
	Score  int
	Best   int
	Mode   flappy.Mode
}

// NewRecording starts an empty recording.
func NewRecording(seed int64, cfg config.FlappyConfig, pilot string) *Recording {
	return &Recording{
		Seed:      seed,
		Config:    cfg,
		Pilot:     pilot,
		StartedAt: time.Now(),
	}
}

func (r *Recording) add(frame uint64, cmd core.Command) {
	r.Events = append(r.Events, Event{Frame: frame, Command: cmd})
}

func (r *Recording) finish(frames uint64, snap flappy.Snapshot) {
	r.Frames = frames
	r.Score = snap.Score
	r.Best = snap.Best
	r.Mode = snap.Mode
}
