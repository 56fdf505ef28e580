package config

import "fmt"

// ConfigurationError reports a configuration that cannot drive a simulation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks that the configuration can produce a playable world.
// It returns a *ConfigurationError describing the first problem found.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		field string
		value int
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"world.ground", c.World.Ground},
		{"body.size", c.Body.Size},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap", c.Obstacles.Gap},
		{"obstacles.spacing", c.Obstacles.Spacing},
		{"obstacles.speed", c.Obstacles.Speed},
		{"obstacles.lookahead", c.Obstacles.Lookahead},
		{"obstacles.margin", c.Obstacles.Margin},
		{"runtime.tick_rate", c.Runtime.TickRate},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return invalid(p.field, "must be positive, got %d", p.value)
		}
	}

	if c.Obstacles.SpawnOffset < 0 {
		return invalid("obstacles.spawn_offset", "must not be negative, got %d", c.Obstacles.SpawnOffset)
	}
	if c.Physics.Gravity <= 0 {
		return invalid("physics.gravity", "must be positive, got %g", c.Physics.Gravity)
	}
	if c.Physics.JumpVelocity >= 0 {
		return invalid("physics.jump_velocity", "must be negative (upward), got %g", c.Physics.JumpVelocity)
	}
	if c.Body.XRatio <= 0 || c.Body.XRatio >= 1 {
		return invalid("body.x_ratio", "must be in (0, 1), got %g", c.Body.XRatio)
	}

	playable := c.PlayableHeight()
	if playable <= c.Body.Size {
		return invalid("world.ground", "playable height %d leaves no room for body size %d", playable, c.Body.Size)
	}
	if c.Obstacles.Gap+2*c.Obstacles.Margin >= playable {
		return invalid("obstacles.gap",
			"gap %d plus 2x margin %d must be less than playable height %d",
			c.Obstacles.Gap, c.Obstacles.Margin, playable)
	}
	if c.Obstacles.Spacing <= c.Obstacles.Width {
		return invalid("obstacles.spacing", "spacing %d must exceed obstacle width %d",
			c.Obstacles.Spacing, c.Obstacles.Width)
	}

	return nil
}
