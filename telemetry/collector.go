// Package telemetry collects per-window match statistics and exports
// them as structured logs and CSV files.
package telemetry

import (
	"math"

	"github.com/pthm-cable/pong/components"
)

// Collector accumulates match events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	pointsLeft      int
	pointsRight     int
	serves          int
	wallBounces     int
	paddleHitsLeft  int
	paddleHitsRight int
	aiResamples     int

	// Rally tracking. A rally is the stretch of play between serves;
	// its length is counted in paddle hits.
	rallyHits    int
	rallyLengths []float64

	// Ball speed sampling
	ballSpeedSum     float64
	ballSpeedMax     float64
	ballSpeedSamples int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in game seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// Round, don't truncate: float32 dt makes 1.0/dt land just under a
	// whole tick count (1s at 60fps divides to 59.999...).
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordServe records a ball serve (match start or post-point reset).
func (c *Collector) RecordServe() {
	c.serves++
}

// RecordWallBounce records a top/bottom wall reflection.
func (c *Collector) RecordWallBounce() {
	c.wallBounces++
}

// RecordPaddleHit records a paddle bounce and extends the current rally.
func (c *Collector) RecordPaddleHit(side components.Side) {
	if side == components.SideLeft {
		c.paddleHitsLeft++
	} else {
		c.paddleHitsRight++
	}
	c.rallyHits++
}

// RecordAIResample records an AI target recomputation.
func (c *Collector) RecordAIResample() {
	c.aiResamples++
}

// RecordPoint records a scored point and closes the current rally.
func (c *Collector) RecordPoint(scorer components.Side) {
	if scorer == components.SideLeft {
		c.pointsLeft++
	} else {
		c.pointsRight++
	}
	c.rallyLengths = append(c.rallyLengths, float64(c.rallyHits))
	c.rallyHits = 0
}

// SampleBallSpeed records the ball's current speed for window averaging.
func (c *Collector) SampleBallSpeed(speed float32) {
	s := float64(speed)
	c.ballSpeedSum += s
	if s > c.ballSpeedMax {
		c.ballSpeedMax = s
	}
	c.ballSpeedSamples++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// scoreLeft/scoreRight are the cumulative match scores at window end.
func (c *Collector) Flush(currentTick int32, scoreLeft, scoreRight int) WindowStats {
	rallyMean, rallyStd, rallyMax := ComputeRallyStats(c.rallyLengths)

	var speedMean float64
	if c.ballSpeedSamples > 0 {
		speedMean = c.ballSpeedSum / float64(c.ballSpeedSamples)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		ScoreLeft:  scoreLeft,
		ScoreRight: scoreRight,

		PointsLeft:  c.pointsLeft,
		PointsRight: c.pointsRight,
		Serves:      c.serves,

		WallBounces:     c.wallBounces,
		PaddleHitsLeft:  c.paddleHitsLeft,
		PaddleHitsRight: c.paddleHitsRight,

		Rallies:       len(c.rallyLengths),
		RallyHitsMean: rallyMean,
		RallyHitsStd:  rallyStd,
		RallyHitsMax:  rallyMax,

		BallSpeedMean: speedMean,
		BallSpeedMax:  c.ballSpeedMax,

		AIResamples: c.aiResamples,
	}

	// Reset for next window. The in-progress rally carries over.
	c.windowStartTick = currentTick
	c.pointsLeft = 0
	c.pointsRight = 0
	c.serves = 0
	c.wallBounces = 0
	c.paddleHitsLeft = 0
	c.paddleHitsRight = 0
	c.aiResamples = 0
	c.rallyLengths = c.rallyLengths[:0]
	c.ballSpeedSum = 0
	c.ballSpeedMax = 0
	c.ballSpeedSamples = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
