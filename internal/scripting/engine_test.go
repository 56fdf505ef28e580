package scripting

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func testSnapshot(y float64) flappy.Snapshot {
	cfg := config.DefaultFlappyConfig()
	return flappy.Snapshot{
		Tick: 5,
		Mode: flappy.ModeRunning,
		Body: flappy.BodyView{X: 117.6, Y: y, Size: cfg.Body.Size},
		Obstacles: []flappy.ObstacleView{
			{X: 0, GapY: 60, Scored: true},
			{X: 220, GapY: 200},
		},
		Score:    1,
		Best:     3,
		Geometry: flappy.NewGeometry(cfg),
	}
}

func load(t *testing.T, src string) (*Engine, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e, err := LoadString(src, config.DefaultFlappyConfig(), log.New(&buf))
	if err != nil {
		t.Fatalf("LoadString() failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e, &buf
}

func TestDecideSeesState(t *testing.T) {
	e, _ := load(t, `
function decide(s)
  return s.tick == 5 and s.mode == "running" and s.score == 1 and s.best == 3
    and s.body.size == 24 and s.world.ground_y == 540 and s.world.gap == 170
    and #s.obstacles == 2 and s.obstacles[1].scored and s.next.gap_y == 200
    and s.next.gap_bottom == 370 and s.physics.gravity == 0.55
    and API_VERSION == 1
end`)

	if !e.Decide(testSnapshot(100)) {
		t.Error("decide() should see every state field")
	}
}

func TestDecideThreshold(t *testing.T) {
	e, _ := load(t, `function decide(s) return s.body.y > s.next.gap_y end`)

	if !e.Decide(testSnapshot(250)) {
		t.Error("expected flap below the gap top")
	}
	if e.Decide(testSnapshot(150)) {
		t.Error("expected no flap above the gap top")
	}
}

func TestDecideNonBooleanResults(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`function decide(s) return nil end`, false},
		{`function decide(s) end`, false},
		{`function decide(s) return 0 end`, true}, // Lua truthiness
		{`function decide(s) return "yes" end`, true},
	}

	for _, tc := range tests {
		e, _ := load(t, tc.src)
		if got := e.Decide(testSnapshot(100)); got != tc.want {
			t.Errorf("%s: Decide() = %v, expected %v", tc.src, got, tc.want)
		}
	}
}

func TestMissingDecide(t *testing.T) {
	e, buf := load(t, `x = 1`)

	if e.Decide(testSnapshot(400)) {
		t.Error("missing decide() should never flap")
	}
	if !strings.Contains(buf.String(), "no decide function") {
		t.Errorf("expected a warning, log = %q", buf.String())
	}
}

func TestRuntimeErrorDegrades(t *testing.T) {
	e, buf := load(t, `function decide(s) error("boom") end`)

	for i := 0; i < 3; i++ {
		if e.Decide(testSnapshot(400)) {
			t.Fatal("a failing decide() should not flap")
		}
	}
	if n := strings.Count(buf.String(), "lua decide error"); n != 1 {
		t.Errorf("logged %d errors, expected exactly 1", n)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadString(`function (`, config.DefaultFlappyConfig(), log.New(&bytes.Buffer{})); err == nil {
		t.Error("syntax error should fail to load")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.lua"), config.DefaultFlappyConfig(), log.New(&bytes.Buffer{})); err == nil {
		t.Error("missing file should fail to load")
	}
}

func TestRegisteredFactory(t *testing.T) {
	if _, err := registry.Create(PilotID, registry.Options{Config: config.DefaultFlappyConfig()}); err == nil {
		t.Error("lua pilot without a script should fail")
	}

	path := filepath.Join(t.TempDir(), "pilot.lua")
	if err := os.WriteFile(path, []byte(`function decide(s) return true end`), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := registry.Create(PilotID, registry.Options{Config: config.DefaultFlappyConfig(), Script: path})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer p.(registry.Closer).Close()

	if !p.Decide(testSnapshot(100)) {
		t.Error("script pilot should flap")
	}
}
