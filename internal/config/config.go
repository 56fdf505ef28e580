// Package config provides YAML/TOML configuration loading and validation
// for the flappy simulation.
package config

// FlappyConfig contains every tunable constant of the simulation.
// Values are fixed for the lifetime of a simulation; physics constants are
// per tick, so they are tuned together with Runtime.TickRate.
type FlappyConfig struct {
	World     WorldConfig     `yaml:"world" toml:"world"`
	Body      BodyConfig      `yaml:"body" toml:"body"`
	Obstacles ObstacleConfig  `yaml:"obstacles" toml:"obstacles"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Runtime   RuntimeSettings `yaml:"runtime" toml:"runtime"`
}

// WorldConfig defines the world bounds in world units.
type WorldConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	Ground int `yaml:"ground" toml:"ground"` // Ground thickness at the bottom
}

// BodyConfig defines the controllable body.
type BodyConfig struct {
	Size   int     `yaml:"size" toml:"size"`       // Square extent
	XRatio float64 `yaml:"x_ratio" toml:"x_ratio"` // Fixed x as a fraction of world width
}

// ObstacleConfig defines the obstacle stream.
type ObstacleConfig struct {
	Width       int `yaml:"width" toml:"width"`
	Gap         int `yaml:"gap" toml:"gap"`         // Vertical opening between the two segments
	Spacing     int `yaml:"spacing" toml:"spacing"` // Horizontal distance between adjacent pairs
	Speed       int `yaml:"speed" toml:"speed"`     // Scroll per tick
	Lookahead   int `yaml:"lookahead" toml:"lookahead"`
	Margin      int `yaml:"margin" toml:"margin"`             // Minimum distance of the gap from top and ground
	SpawnOffset int `yaml:"spawn_offset" toml:"spawn_offset"` // First pair spawns at width + offset
}

// PhysicsConfig defines per-tick physics constants.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity" toml:"jump_velocity"` // Negative = up
}

// RuntimeSettings defines how fast the driver ticks.
type RuntimeSettings struct {
	TickRate int `yaml:"tick_rate" toml:"tick_rate"` // Ticks per second
}

// PlayableHeight returns the vertical span above the ground.
func (c FlappyConfig) PlayableHeight() int {
	return c.World.Height - c.World.Ground
}

// GapRange returns the half-open range [min, max) of valid gap offsets.
func (c FlappyConfig) GapRange() (min, max int) {
	min = c.Obstacles.Margin
	max = c.PlayableHeight() - c.Obstacles.Gap - c.Obstacles.Margin
	return min, max
}
