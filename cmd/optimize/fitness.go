package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/telemetry"
)

// Fitness targets. Self-play matches should produce rallies a human finds
// interesting and a point rate that keeps the score moving.
const (
	targetRallyHits    = 4.0  // mean paddle hits per rally
	targetPointsPerMin = 10.0 // points scored per simulated minute

	weightRally   = 0.45
	weightRate    = 0.35
	weightBalance = 0.20

	warmupWindows = 1 // skip the first stats window (opening serve noise)
)

// FitnessEvaluator runs headless self-play matches and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality matchQuality // from most recent Evaluate call
}

// matchQuality holds the per-evaluation diagnostics printed with progress.
type matchQuality struct {
	RallyHitsMean float64
	PointsPerMin  float64
	RightShare    float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
	}
}

// LastQuality returns diagnostics from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() matchQuality {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// All seeds run in parallel; their fitnesses are averaged.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitnesses := make([]float64, len(fe.seeds))
	qualities := make([]matchQuality, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runMatch(x, s)
			q := summarize(windows)
			fitnesses[idx] = fitnessOf(q)
			qualities[idx] = q
		}(i, seed)
	}
	wg.Wait()

	avgFitness := stat.Mean(fitnesses, nil)

	var avg matchQuality
	for _, q := range qualities {
		avg.RallyHitsMean += q.RallyHitsMean
		avg.PointsPerMin += q.PointsPerMin
		avg.RightShare += q.RightShare
	}
	n := float64(len(qualities))
	avg.RallyHitsMean /= n
	avg.PointsPerMin /= n
	avg.RightShare /= n

	fe.mu.Lock()
	fe.lastQuality = avg
	fe.mu.Unlock()

	return avgFitness
}

// runMatch executes a single headless self-play match and collects its
// stats windows.
func (fe *FitnessEvaluator) runMatch(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		AutoPlayer:     true,
		StatsWindowSec: fe.statsWindow,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})

	for g.Tick() < fe.maxTicks && !g.MatchOver() {
		g.UpdateHeadless()
	}
	g.Unload()

	return windows
}

// copyConfig creates a fresh config carrying the base config's values.
// Config holds only value fields so a struct copy is a full copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig

	// Endless play: the optimizer controls the run length via maxTicks.
	cfg.Match.MaxScore = 0
	cfg.ComputeDerived()

	return &cfg
}

// summarize aggregates window stats into match quality numbers.
func summarize(windows []telemetry.WindowStats) matchQuality {
	var q matchQuality
	if len(windows) <= warmupWindows {
		return q
	}
	valid := windows[warmupWindows:]

	rallyMeans := make([]float64, 0, len(valid))
	var points, pointsRight int

	for _, w := range valid {
		if w.Rallies > 0 {
			rallyMeans = append(rallyMeans, w.RallyHitsMean)
		}
		points += w.PointsLeft + w.PointsRight
		pointsRight += w.PointsRight
	}

	// SimTimeSec is cumulative, so the measured span is last minus the
	// window preceding the first valid one.
	simTime := valid[len(valid)-1].SimTimeSec - windows[warmupWindows-1].SimTimeSec

	if len(rallyMeans) > 0 {
		q.RallyHitsMean = stat.Mean(rallyMeans, nil)
	}
	if simTime > 0 {
		q.PointsPerMin = float64(points) / (simTime / 60.0)
	}
	if points > 0 {
		q.RightShare = float64(pointsRight) / float64(points)
	} else {
		q.RightShare = 0.5
	}

	return q
}

// fitnessOf converts match quality into a scalar (lower = better).
// Each term is the relative error from its target; balance penalizes any
// systematic side bias, which with mirrored controllers indicates a
// geometry or controller asymmetry rather than taste.
func fitnessOf(q matchQuality) float64 {
	rallyErr := math.Abs(q.RallyHitsMean-targetRallyHits) / targetRallyHits
	rateErr := math.Abs(q.PointsPerMin-targetPointsPerMin) / targetPointsPerMin
	balanceErr := 2.0 * math.Abs(q.RightShare-0.5)

	return weightRally*rallyErr + weightRate*rateErr + weightBalance*balanceErr
}
