package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("expected 800x600 screen, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.Screen.TargetFPS)
	}
	if cfg.Paddle.PlayerSpeed <= cfg.Paddle.AISpeed {
		t.Errorf("player speed (%f) should exceed AI speed (%f)", cfg.Paddle.PlayerSpeed, cfg.Paddle.AISpeed)
	}
	if cfg.Ball.MaxSpeed < cfg.Ball.InitialSpeed {
		t.Errorf("max speed (%f) below initial speed (%f)", cfg.Ball.MaxSpeed, cfg.Ball.InitialSpeed)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Derived.ScreenW32 != 800 || cfg.Derived.ScreenH32 != 600 {
		t.Errorf("derived screen dims: got %fx%f", cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}

	// 0.12s at 60 fps is 7 ticks
	if cfg.Derived.ReactionTicks != 7 {
		t.Errorf("expected 7 reaction ticks, got %d", cfg.Derived.ReactionTicks)
	}

	wantBounce := 0.45 * math.Pi
	if math.Abs(float64(cfg.Derived.BounceAngleRad)-wantBounce) > 1e-5 {
		t.Errorf("bounce angle: got %f, want %f", cfg.Derived.BounceAngleRad, wantBounce)
	}
	wantServe := 0.35 * math.Pi
	if math.Abs(float64(cfg.Derived.ServeAngleRad)-wantServe) > 1e-5 {
		t.Errorf("serve angle: got %f, want %f", cfg.Derived.ServeAngleRad, wantServe)
	}
}

func TestLoadMergesUserConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// Override only the AI section; everything else keeps defaults.
	user := []byte("ai:\n  reaction_delay: 0.5\n  sigma_max: 40\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatalf("writing user config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}

	if cfg.AI.ReactionDelay != 0.5 {
		t.Errorf("expected reaction_delay 0.5, got %f", cfg.AI.ReactionDelay)
	}
	if cfg.AI.SigmaMax != 40 {
		t.Errorf("expected sigma_max 40, got %f", cfg.AI.SigmaMax)
	}
	if cfg.AI.SigmaBase != 8.0 {
		t.Errorf("expected default sigma_base 8.0, got %f", cfg.AI.SigmaBase)
	}
	if cfg.Screen.Width != 800 {
		t.Errorf("expected default width 800, got %d", cfg.Screen.Width)
	}
	if cfg.Derived.ReactionTicks != 30 {
		t.Errorf("expected 30 reaction ticks after override, got %d", cfg.Derived.ReactionTicks)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	cfg.Match.MaxScore = 11

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Match.MaxScore != 11 {
		t.Errorf("expected max_score 11 after round trip, got %d", loaded.Match.MaxScore)
	}
}
