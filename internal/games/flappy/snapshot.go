package flappy

// BodyView is the renderer's view of the body.
type BodyView struct {
	X        float64
	Y        float64
	Velocity float64
	Size     int
}

// ObstacleView is the renderer's view of one obstacle pair.
// X is the logical position; pairs waiting to scroll in or partially off
// the left edge report x outside [0, width] and renderers clip them.
type ObstacleView struct {
	X      int
	GapY   int
	Scored bool
}

// OnScreen reports whether any column of the pair lies inside [0, width).
func (o ObstacleView) OnScreen(geo Geometry) bool {
	return o.X < geo.Width && o.X+geo.ObstacleWidth > 0
}

// Snapshot is a read-only copy of the world after a tick.
// It shares no memory with the game, so it may be handed to another goroutine.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Body      BodyView
	Obstacles []ObstacleView // Ascending by x
	Score     int
	Best      int
	Geometry  Geometry
}

// Snapshot returns the current world state for rendering and inspection.
func (g *Game) Snapshot() Snapshot {
	pairs := g.world.Obstacles.Pairs()
	obstacles := make([]ObstacleView, len(pairs))
	for i, p := range pairs {
		obstacles[i] = ObstacleView{X: p.X, GapY: p.GapY, Scored: p.Scored}
	}

	return Snapshot{
		Tick: g.world.Tick,
		Mode: g.world.Mode,
		Body: BodyView{
			X:        g.world.Body.X,
			Y:        g.world.Body.Y,
			Velocity: g.world.Body.Velocity,
			Size:     g.geo.BodySize,
		},
		Obstacles: obstacles,
		Score:     g.world.Score,
		Best:      g.world.Best,
		Geometry:  g.geo,
	}
}

// NextObstacle returns the first pair whose right edge has not yet passed
// the body, or false if none is ahead.
func (s Snapshot) NextObstacle() (ObstacleView, bool) {
	for _, o := range s.Obstacles {
		if float64(o.X+s.Geometry.ObstacleWidth) >= s.Body.X {
			return o, true
		}
	}
	return ObstacleView{}, false
}
