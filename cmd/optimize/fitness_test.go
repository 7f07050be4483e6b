package main

import (
	"testing"

	"github.com/pthm-cable/pong/config"
)

func TestCopyConfigIsIndependent(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 1000, []int64{42}, base)

	cfg := fe.copyConfig()
	if cfg.Match.MaxScore != 0 {
		t.Errorf("expected endless play, got max score %d", cfg.Match.MaxScore)
	}
	if cfg.Screen != base.Screen || cfg.Ball != base.Ball || cfg.AI != base.AI {
		t.Error("copy should carry the base config's values")
	}

	cfg.AI.SigmaBase = base.AI.SigmaBase + 99
	cfg.Paddle.AISpeed = base.Paddle.AISpeed + 1
	if base.AI.SigmaBase == cfg.AI.SigmaBase || base.Paddle.AISpeed == cfg.Paddle.AISpeed {
		t.Error("mutating the copy must not touch the base config")
	}
}
