package game

import (
	"testing"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/systems"
	"github.com/pthm-cable/pong/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Config == nil {
		opts.Config = testConfig(t)
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return NewGameWithOptions(opts)
}

// aimBallLeft points the ball straight left above the paddle's reach so it
// exits the left boundary without interference.
func aimBallLeft(g *Game) {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)
	pos.X = 100
	pos.Y = 20
	ball.Speed = 6
	vel.X = -6
	vel.Y = 0
}

func TestLeftBoundaryScoresForRight(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	aimBallLeft(g)

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
		if _, right := g.Score(); right == 1 {
			break
		}
	}

	left, right := g.Score()
	if left != 0 || right != 1 {
		t.Fatalf("score = %d-%d, want 0-1", left, right)
	}

	// Point resets the ball to center court at initial speed, served back
	// toward the conceding side.
	cfg := g.config()
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)

	wantX := cfg.Derived.ScreenW32/2 - ball.Size/2
	if diff := pos.X - wantX; diff < -8 || diff > 8 {
		t.Errorf("ball x after reset = %v, want near %v", pos.X, wantX)
	}
	if ball.Speed != float32(cfg.Ball.InitialSpeed) {
		t.Errorf("ball speed after reset = %v, want %v", ball.Speed, cfg.Ball.InitialSpeed)
	}
	if vel.X >= 0 {
		t.Errorf("serve vx = %v, want negative (toward conceding side)", vel.X)
	}
}

func TestPlayerPaddleClampsAtTop(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	g.SetPlayerDir(systems.DirUp)

	for i := 0; i < 200; i++ {
		g.UpdateHeadless()
	}

	pos := g.posMap.Get(g.leftPaddle)
	if pos.Y != 0 {
		t.Errorf("paddle y after holding up = %v, want 0", pos.Y)
	}
}

func TestMatchEndsAtMaxScore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Match.MaxScore = 1

	g := newHeadlessGame(t, Options{Config: cfg})
	aimBallLeft(g)

	for i := 0; i < 60 && !g.MatchOver(); i++ {
		g.UpdateHeadless()
	}

	if !g.MatchOver() {
		t.Fatal("match did not end at max score")
	}
	if g.Winner() != components.SideRight {
		t.Errorf("winner = %v, want right", g.Winner())
	}

	// A finished match is frozen.
	tick := g.Tick()
	g.UpdateHeadless()
	if g.Tick() != tick {
		t.Errorf("tick advanced after match over: %d -> %d", tick, g.Tick())
	}
}

func TestSelfPlayStaysInBounds(t *testing.T) {
	g := newHeadlessGame(t, Options{AutoPlayer: true, Seed: 7})

	if g.aiMap.Get(g.leftPaddle) == nil {
		t.Fatal("self-play left paddle has no controller")
	}

	cfg := g.config()
	for i := 0; i < 3000; i++ {
		g.UpdateHeadless()

		for _, e := range []struct {
			name string
			y    float32
			h    float32
		}{
			{"left paddle", g.posMap.Get(g.leftPaddle).Y, g.padMap.Get(g.leftPaddle).Height},
			{"right paddle", g.posMap.Get(g.rightPaddle).Y, g.padMap.Get(g.rightPaddle).Height},
		} {
			if e.y < 0 || e.y+e.h > cfg.Derived.ScreenH32 {
				t.Fatalf("tick %d: %s out of bounds at y=%v", i, e.name, e.y)
			}
		}

		ballY := g.posMap.Get(g.ball).Y
		if ballY < -1 || ballY > cfg.Derived.ScreenH32+1 {
			t.Fatalf("tick %d: ball out of bounds at y=%v", i, ballY)
		}
	}

	if g.Tick() != 3000 {
		t.Errorf("tick = %d, want 3000", g.Tick())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() (int, int, float32) {
		g := newHeadlessGame(t, Options{AutoPlayer: true, Seed: 99})
		for i := 0; i < 2000; i++ {
			g.UpdateHeadless()
		}
		l, r := g.Score()
		return l, r, g.posMap.Get(g.ball).X
	}

	l1, r1, x1 := run()
	l2, r2, x2 := run()
	if l1 != l2 || r1 != r2 || x1 != x2 {
		t.Errorf("same seed diverged: %d-%d x=%v vs %d-%d x=%v", l1, r1, x1, l2, r2, x2)
	}
}

func TestStatsCallbackReceivesWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadlessGame(t, Options{
		StatsWindowSec: 0.1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	if len(windows) == 0 {
		t.Fatal("no stats windows flushed")
	}
	if windows[0].Serves < 1 {
		t.Errorf("first window serves = %d, want >= 1 (opening serve)", windows[0].Serves)
	}
}
