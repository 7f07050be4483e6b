package game

import (
	"log/slog"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/systems"
	"github.com/pthm-cable/pong/telemetry"
)

// step advances the simulation by one tick.
func (g *Game) step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhasePaddles)
	g.updatePlayerPaddle()

	g.perfCollector.StartPhase(telemetry.PhaseAI)
	g.updateAIPaddles()

	g.perfCollector.StartPhase(telemetry.PhaseBall)
	g.updateBall()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// updatePlayerPaddle applies keyboard intent to the left paddle. In
// self-play mode the left paddle is AI-driven and handled with the others.
func (g *Game) updatePlayerPaddle() {
	if g.autoPlayer {
		return
	}
	pos := g.posMap.Get(g.leftPaddle)
	pad := g.padMap.Get(g.leftPaddle)
	systems.StepPlayerPaddle(pos, pad, g.playerDir, g.aiParams.FieldHeight)
}

// updateAIPaddles resamples targets and moves every AI-controlled paddle.
func (g *Game) updateAIPaddles() {
	ballPos := *g.posMap.Get(g.ball)
	ballVel := *g.velMap.Get(g.ball)
	ball := *g.ballMap.Get(g.ball)

	rightAI := g.aiMap.Get(g.rightPaddle)
	if systems.UpdateAITarget(rightAI, ballPos, ballVel, ball, g.aiParams, g.rng) {
		g.collector.RecordAIResample()
	}
	rightPos := g.posMap.Get(g.rightPaddle)
	rightPad := g.padMap.Get(g.rightPaddle)
	systems.StepPaddleTowardTarget(rightPos, rightPad, rightAI.TargetY, g.aiParams.FieldHeight)

	if !g.autoPlayer {
		return
	}

	leftAI := g.aiMap.Get(g.leftPaddle)
	if systems.UpdateAITargetLeft(leftAI, ballPos, ballVel, ball, g.aiParams, g.rng) {
		g.collector.RecordAIResample()
	}
	leftPos := g.posMap.Get(g.leftPaddle)
	leftPad := g.padMap.Get(g.leftPaddle)
	systems.StepPaddleTowardTarget(leftPos, leftPad, leftAI.TargetY, g.aiParams.FieldHeight)
}

// updateBall advances the ball and folds the step result into score and
// telemetry state.
func (g *Game) updateBall() {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)

	leftPos := *g.posMap.Get(g.leftPaddle)
	leftPad := *g.padMap.Get(g.leftPaddle)
	rightPos := *g.posMap.Get(g.rightPaddle)
	rightPad := *g.padMap.Get(g.rightPaddle)

	res := systems.StepBall(pos, vel, ball, leftPos, leftPad, rightPos, rightPad, g.ballParams, g.rng)

	if res.WallBounce {
		g.collector.RecordWallBounce()
	}
	if res.PaddleHit {
		g.collector.RecordPaddleHit(res.PaddleSide)
	}
	g.collector.SampleBallSpeed(ball.Speed)

	if res.Scored {
		g.recordPoint(res.Scorer)
	}
}

// recordPoint applies a scored point: score bookkeeping, telemetry, the
// HUD flash, and match termination when a score limit is configured.
func (g *Game) recordPoint(scorer components.Side) {
	if scorer == components.SideLeft {
		g.scoreLeft++
	} else {
		g.scoreRight++
	}
	g.collector.RecordPoint(scorer)
	// StepBall already re-served the ball for the next point.
	g.collector.RecordServe()
	g.startScoreFlash(scorer)

	if g.maxScore > 0 && (g.scoreLeft >= g.maxScore || g.scoreRight >= g.maxScore) {
		g.matchOver = true
		g.winner = scorer
		slog.Info("match over",
			"winner", g.winner.String(),
			"score_left", g.scoreLeft,
			"score_right", g.scoreRight,
			"tick", g.tick,
		)
	}
}

// flushTelemetry emits the stats window when it elapses.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.scoreLeft, g.scoreRight)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
