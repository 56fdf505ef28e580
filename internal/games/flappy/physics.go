package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// integrate advances the body by one tick: gravity first, then position.
func integrate(b *Body, p config.PhysicsConfig) {
	b.Velocity += p.Gravity
	b.Y += b.Velocity
}

// flap replaces the body's velocity with the jump velocity.
// It is a reset, not an increment: prior momentum is discarded.
func flap(b *Body, jumpVelocity float64) {
	b.Velocity = jumpVelocity
}
