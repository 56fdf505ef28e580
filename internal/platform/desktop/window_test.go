package desktop

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

func TestWindowLayoutIsWorldSize(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.World.Width = 360
	g, err := flappy.New(cfg, flappy.WithSeed(3))
	if err != nil {
		t.Fatalf("flappy.New() failed: %v", err)
	}
	w := New(sim.NewDriver(g, 60), Options{})

	// The outside size is ignored; ebiten scales the world to the window.
	for _, size := range [][2]int{{100, 100}, {1920, 1080}} {
		if gw, gh := w.Layout(size[0], size[1]); gw != 360 || gh != 640 {
			t.Errorf("Layout(%d, %d) = %dx%d, expected 360x640", size[0], size[1], gw, gh)
		}
	}
	if w.face == nil || w.logger == nil {
		t.Error("New should set a face and a default logger")
	}
}
