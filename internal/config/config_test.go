package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML(), FormatYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded defaults differ from DefaultFlappyConfig():\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestGapRange(t *testing.T) {
	min, max := DefaultFlappyConfig().GapRange()
	if min != 60 {
		t.Errorf("min = %d, expected 60", min)
	}
	// 640 - 100 - 170 - 60
	if max != 310 {
		t.Errorf("max = %d, expected 310", max)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *FlappyConfig)
		field  string
	}{
		{"zero width", func(c *FlappyConfig) { c.World.Width = 0 }, "world.width"},
		{"negative speed", func(c *FlappyConfig) { c.Obstacles.Speed = -3 }, "obstacles.speed"},
		{"no lookahead", func(c *FlappyConfig) { c.Obstacles.Lookahead = 0 }, "obstacles.lookahead"},
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }, "physics.gravity"},
		{"downward jump", func(c *FlappyConfig) { c.Physics.JumpVelocity = 2 }, "physics.jump_velocity"},
		{"body off world", func(c *FlappyConfig) { c.Body.XRatio = 1.5 }, "body.x_ratio"},
		{"ground swallows world", func(c *FlappyConfig) { c.World.Ground = 630 }, "world.ground"},
		{"gap fills playable height", func(c *FlappyConfig) { c.Obstacles.Gap = 500 }, "obstacles.gap"},
		{"gap exactly degenerate", func(c *FlappyConfig) { c.Obstacles.Gap = 540 - 120 }, "obstacles.gap"},
		{"overlapping pairs", func(c *FlappyConfig) { c.Obstacles.Spacing = 60 }, "obstacles.spacing"},
		{"negative spawn offset", func(c *FlappyConfig) { c.Obstacles.SpawnOffset = -1 }, "obstacles.spawn_offset"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, expected *ConfigurationError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestValidateSmallestGapRange(t *testing.T) {
	cfg := DefaultFlappyConfig()
	// One unit of slack: exactly one valid gap offset
	cfg.Obstacles.Gap = cfg.PlayableHeight() - 2*cfg.Obstacles.Margin - 1

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, expected nil", err)
	}
	min, max := cfg.GapRange()
	if max-min != 1 {
		t.Errorf("gap range = [%d, %d), expected width 1", min, max)
	}
}

func TestParseYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.4\nobstacles:\n  speed: 5\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.4 || cfg.Obstacles.Speed != 5 {
		t.Errorf("overridden values not applied: %+v", cfg)
	}
	if cfg.Physics.JumpVelocity != -8.5 || cfg.World.Width != 420 {
		t.Errorf("untouched values should keep defaults: %+v", cfg)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte("[world]\nwidth = 500\n\n[physics]\njump_velocity = -7.0\n")
	cfg, err := Parse(data, FormatTOML)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.World.Width != 500 || cfg.Physics.JumpVelocity != -7.0 {
		t.Errorf("TOML values not applied: %+v", cfg)
	}
	if cfg.World.Height != 640 {
		t.Errorf("height should keep default, got %d", cfg.World.Height)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("world: [1, 2"), FormatYAML); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("[world\nwidth ="), FormatTOML); err == nil {
		t.Error("expected TOML error")
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.toml")
	if err := os.WriteFile(path, []byte("[obstacles]\nspacing = 260\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Obstacles.Spacing != 260 {
		t.Errorf("spacing = %d, expected 260", cfg.Obstacles.Spacing)
	}
}

func TestLoadFlappyInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadFlappy(path)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LoadFlappy() = %v, expected *ConfigurationError", err)
	}
}

func TestLoadFlappyMissingFile(t *testing.T) {
	if _, _, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadFlappyUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".flappy", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flappy.yaml"), []byte("body:\n  size: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if source != filepath.Join(dir, "flappy.yaml") {
		t.Errorf("source = %q", source)
	}
	if cfg.Body.Size != 20 {
		t.Errorf("body size = %d, expected 20", cfg.Body.Size)
	}
}

func TestLoadFlappyEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, source, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if source != EmbeddedSource {
		t.Errorf("source = %q, expected %q", source, EmbeddedSource)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Error("embedded config should equal defaults")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Obstacles.Gap = 150

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() failed: %v", err)
	}
	back, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}
