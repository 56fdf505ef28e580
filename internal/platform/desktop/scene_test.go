package desktop

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func testSnapshot(mode flappy.Mode, obstacles ...flappy.ObstacleView) flappy.Snapshot {
	cfg := config.DefaultFlappyConfig()
	return flappy.Snapshot{
		Mode:      mode,
		Body:      flappy.BodyView{X: 117.6, Y: 308, Size: cfg.Body.Size},
		Obstacles: obstacles,
		Geometry:  flappy.NewGeometry(cfg),
	}
}

func TestSceneRectsBackground(t *testing.T) {
	rects := sceneRects(testSnapshot(flappy.ModeRunning))

	// sky, ground, grass, body, eye, beak
	if len(rects) != 6 {
		t.Fatalf("len = %d, expected 6", len(rects))
	}
	if rects[0].Color != skyColor || rects[0].W != 420 || rects[0].H != 640 {
		t.Errorf("first rect = %+v, expected full-world sky", rects[0])
	}
	if rects[1].Y != 540 || rects[1].H != 100 || rects[1].Color != groundColor {
		t.Errorf("ground rect = %+v", rects[1])
	}
	if rects[3].X != float32(117.6) || rects[3].Y != 308 || rects[3].Color != bodyColor {
		t.Errorf("body rect = %+v", rects[3])
	}
}

func TestSceneRectsObstacles(t *testing.T) {
	rects := sceneRects(testSnapshot(flappy.ModeRunning,
		flappy.ObstacleView{X: -70, GapY: 100}, // fully off the left edge
		flappy.ObstacleView{X: 200, GapY: 100},
		flappy.ObstacleView{X: 420, GapY: 100}, // not yet visible
	))

	if len(rects) != 6+4 {
		t.Fatalf("len = %d, expected one visible pair", len(rects))
	}

	top, bottom := rects[1], rects[3]
	if top.X != 200 || top.Y != 0 || top.H != 100 {
		t.Errorf("top segment = %+v", top)
	}
	if bottom.Y != 270 || bottom.H != 540-270 {
		t.Errorf("bottom segment = %+v", bottom)
	}
}

func TestSceneRectsOverlay(t *testing.T) {
	for _, mode := range []flappy.Mode{flappy.ModePaused, flappy.ModeGameOver} {
		rects := sceneRects(testSnapshot(mode))
		if last := rects[len(rects)-1]; last.Color != overlayColor {
			t.Errorf("%v: last rect = %+v, expected overlay", mode, last)
		}
	}
}
