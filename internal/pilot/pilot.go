// Package pilot holds the built-in pilots: the human placeholder, whose
// commands come from the keyboard, and an autopilot that steers for the
// centre of the next gap.
package pilot

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func init() {
	registry.Register(registry.PilotInfo{
		ID:          HumanID,
		Title:       "Human",
		Description: "keyboard input only",
	}, func(registry.Options) (registry.Pilot, error) {
		return Human{}, nil
	})

	registry.Register(registry.PilotInfo{
		ID:          BotID,
		Title:       "Autopilot",
		Description: "flaps to hold the centre of the next gap",
	}, func(opts registry.Options) (registry.Pilot, error) {
		return NewBot(opts.Config), nil
	})
}

const (
	HumanID = "human"
	BotID   = "bot"
)

// Human never flaps on its own.
type Human struct{}

func (Human) ID() string { return HumanID }

func (Human) Decide(flappy.Snapshot) bool { return false }

// Bot flaps whenever the body is predicted to sink below the centre of the
// upcoming gap by more than Slack units.
type Bot struct {
	gravity float64
	Slack   float64
}

// NewBot creates an autopilot for the given physics.
func NewBot(cfg config.FlappyConfig) *Bot {
	return &Bot{
		gravity: cfg.Physics.Gravity,
		Slack:   20,
	}
}

func (b *Bot) ID() string { return BotID }

// Decide looks one tick ahead without a flap and flaps if the body's top
// would end up below the target line.
func (b *Bot) Decide(snap flappy.Snapshot) bool {
	predicted := snap.Body.Y + snap.Body.Velocity + b.gravity
	return predicted > Target(snap)+b.Slack
}

// Target returns the body y that centres it in the next gap, or in the
// playable area when no gap is ahead.
func Target(snap flappy.Snapshot) float64 {
	geo := snap.Geometry
	size := float64(snap.Body.Size)

	next, ok := snap.NextObstacle()
	if !ok {
		return (float64(geo.GroundY()) - size) / 2
	}
	return float64(next.GapY) + float64(geo.Gap)/2 - size/2
}
