package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:  420,
			Height: 640,
			Ground: 100,
		},
		Body: BodyConfig{
			Size:   24,
			XRatio: 0.28,
		},
		Obstacles: ObstacleConfig{
			Width:       60,
			Gap:         170,
			Spacing:     220,
			Speed:       3,
			Lookahead:   4,
			Margin:      60,
			SpawnOffset: 100,
		},
		Physics: PhysicsConfig{
			Gravity:      0.55,
			JumpVelocity: -8.5,
		},
		Runtime: RuntimeSettings{
			TickRate: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
