package flappy

// Collision identifies what ended a life.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionGround
	CollisionObstacle
)

// String returns a human-readable name for the collision.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionGround:
		return "ground"
	case CollisionObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// resolve applies the ceiling clamp, detects fatal collisions and awards
// points for pairs the body has passed. It moves the world to GameOver on
// a fatal collision. Scoring runs in the same pass regardless of outcome.
func resolve(w *WorldState, geo Geometry) StepResult {
	var res StepResult

	clampCeiling(&w.Body)

	if hitGround(&w.Body, geo) {
		res.Collision = CollisionGround
	} else if hitObstacle(w, geo) {
		res.Collision = CollisionObstacle
	}

	res.Passed = awardPasses(w, geo)

	if res.Collision != CollisionNone {
		w.Mode = ModeGameOver
	}
	return res
}

// clampCeiling keeps the body from leaving through the top. Not fatal.
func clampCeiling(b *Body) {
	if b.Y < 0 {
		b.Y = 0
		b.Velocity = 0
	}
}

// hitGround reports whether the body's bottom edge went below the ground
// surface, snapping it onto the surface if so.
func hitGround(b *Body, geo Geometry) bool {
	limit := float64(geo.GroundY() - geo.BodySize)
	if b.Y <= limit {
		return false
	}
	b.Y = limit
	return true
}

// hitObstacle reports whether the body overlaps any segment of any pair.
// Stops at the first hit.
func hitObstacle(w *WorldState, geo Geometry) bool {
	body := w.Body.Rect(geo.BodySize)
	for i := 0; i < w.Obstacles.Len(); i++ {
		p := w.Obstacles.At(i)
		if body.Intersects(p.TopRect(geo)) || body.Intersects(p.BottomRect(geo)) {
			return true
		}
	}
	return false
}

// awardPasses marks every unscored pair whose right edge is strictly left of
// the body's x, adding one point per pair. Returns the number awarded.
func awardPasses(w *WorldState, geo Geometry) int {
	passed := 0
	for i := 0; i < w.Obstacles.Len(); i++ {
		p := w.Obstacles.At(i)
		if p.Scored || float64(p.Right(geo)) >= w.Body.X {
			continue
		}
		p.Scored = true
		w.Score++
		passed++
	}
	if w.Score > w.Best {
		w.Best = w.Score
	}
	return passed
}
