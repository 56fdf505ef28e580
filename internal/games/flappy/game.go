package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// StepResult describes what happened during one call to Game.Step.
type StepResult struct {
	Simulated bool      // False when the tick was skipped (paused or game over)
	Recycled  bool      // A pair left the screen and was replaced
	Passed    int       // Pairs scored this tick
	Collision Collision // Fatal collision, if any
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRand sets the random source used for gap placement.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithSeed seeds a private random source for gap placement.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// Game is the game-mode state machine. It owns the WorldState, applies
// commands and sequences the per-tick update. Not safe for concurrent use;
// the sim.Driver serializes access.
type Game struct {
	cfg   config.FlappyConfig
	geo   Geometry
	rng   *rand.Rand
	world WorldState
}

// New creates a game and performs the initial reset.
// It fails with a *config.ConfigurationError if cfg cannot produce a
// playable world.
func New(cfg config.FlappyConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg: cfg,
		geo: NewGeometry(cfg),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.world.Obstacles = NewStream(cfg, g.rng)
	g.Reset()
	return g, nil
}

// ID returns the identifier used in the run journal.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Geometry returns the fixed world dimensions.
func (g *Game) Geometry() Geometry {
	return g.geo
}

// Mode returns the current game mode.
func (g *Game) Mode() Mode {
	return g.world.Mode
}

// Reset reinitializes the world for a new life. The best score is kept.
func (g *Game) Reset() {
	g.world.Mode = ModeRunning
	g.world.Score = 0
	g.world.Tick = 0
	g.world.Body = Body{
		X: float64(g.cfg.World.Width) * g.cfg.Body.XRatio,
		Y: float64(g.cfg.World.Height)/2.0 - float64(g.cfg.Body.Size)/2.0,
	}
	g.world.Obstacles.Fill(g.cfg.World.Width + g.cfg.Obstacles.SpawnOffset)
}

// Apply executes a command between ticks. Every command is accepted in every
// mode; it returns true only if the command changed the world.
func (g *Game) Apply(cmd core.Command) bool {
	switch cmd {
	case core.CommandFlap:
		if g.world.Mode != ModeRunning {
			return false
		}
		flap(&g.world.Body, g.cfg.Physics.JumpVelocity)
		return true

	case core.CommandTogglePause:
		switch g.world.Mode {
		case ModeRunning:
			g.world.Mode = ModePaused
		case ModePaused:
			g.world.Mode = ModeRunning
		default:
			return false
		}
		return true

	case core.CommandRestart:
		g.Reset()
		return true
	}
	return false
}

// Step advances the simulation by one fixed tick. Ticks in Paused or
// GameOver leave the world untouched.
func (g *Game) Step() StepResult {
	if g.world.Mode != ModeRunning {
		return StepResult{}
	}

	g.world.Tick++

	integrate(&g.world.Body, g.cfg.Physics)
	recycled := g.world.Obstacles.Advance(g.cfg.Obstacles.Speed)

	res := resolve(&g.world, g.geo)
	res.Simulated = true
	res.Recycled = recycled
	return res
}
