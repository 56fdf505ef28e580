// Package flappy implements the simulation core of a Flappy Bird-style game:
// a body falls under gravity and flaps upward while paired obstacles scroll
// toward it. The package holds no frontend code; frontends read snapshots and
// send commands.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Mode is the game-mode state. Exactly one mode is active at a time.
type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeRunning, ModePaused, ModeGameOver} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeRunning, fmt.Errorf("flappy: unknown mode %q", s)
}

// Geometry holds the fixed world dimensions derived from configuration.
type Geometry struct {
	Width         int // World width
	Height        int // World height
	Ground        int // Ground thickness
	BodySize      int // Square extent of the body
	ObstacleWidth int // Width of both obstacle segments
	Gap           int // Vertical opening of a pair
}

// NewGeometry extracts the geometry from a configuration.
func NewGeometry(cfg config.FlappyConfig) Geometry {
	return Geometry{
		Width:         cfg.World.Width,
		Height:        cfg.World.Height,
		Ground:        cfg.World.Ground,
		BodySize:      cfg.Body.Size,
		ObstacleWidth: cfg.Obstacles.Width,
		Gap:           cfg.Obstacles.Gap,
	}
}

// GroundY returns the y-coordinate of the ground surface.
func (g Geometry) GroundY() int {
	return g.Height - g.Ground
}

// Body is the controllable square. X never changes after a reset;
// the world scrolls past it.
type Body struct {
	X        float64
	Y        float64
	Velocity float64 // Vertical only, positive = down
}

// Rect returns the body's bounding box with coordinates truncated to whole units.
func (b Body) Rect(size int) core.Rect {
	return core.NewRect(int(b.X), int(b.Y), size, size)
}

// ObstaclePair is a top and bottom segment with an opening between them.
type ObstaclePair struct {
	X      int  // Left edge, decreases every running tick
	GapY   int  // Top of the opening, fixed at creation
	Scored bool // Whether the body has passed this pair
}

// Right returns the x-coordinate of the pair's right edge.
func (p ObstaclePair) Right(geo Geometry) int {
	return p.X + geo.ObstacleWidth
}

// TopRect returns the collision rectangle of the top segment.
func (p ObstaclePair) TopRect(geo Geometry) core.Rect {
	return core.NewRect(p.X, 0, geo.ObstacleWidth, p.GapY)
}

// BottomRect returns the collision rectangle of the bottom segment.
func (p ObstaclePair) BottomRect(geo Geometry) core.Rect {
	bottomY := p.GapY + geo.Gap
	return core.NewRect(p.X, bottomY, geo.ObstacleWidth, geo.GroundY()-bottomY)
}

// WorldState is the complete mutable state of one simulation.
// It is owned by a Game and mutated only inside Step or Apply.
type WorldState struct {
	Body      Body
	Obstacles *Stream
	Score     int
	Best      int // Session high-water mark, survives restarts
	Mode      Mode
	Tick      uint64 // Simulated ticks since the last restart
}
