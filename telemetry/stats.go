package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated match statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Cumulative match score at window end
	ScoreLeft  int `csv:"score_left"`
	ScoreRight int `csv:"score_right"`

	// Events during window
	PointsLeft  int `csv:"points_left"`
	PointsRight int `csv:"points_right"`
	Serves      int `csv:"serves"`

	WallBounces     int `csv:"wall_bounces"`
	PaddleHitsLeft  int `csv:"paddle_hits_left"`
	PaddleHitsRight int `csv:"paddle_hits_right"`

	// Rally length distribution (paddle hits per completed rally)
	Rallies       int     `csv:"rallies"`
	RallyHitsMean float64 `csv:"rally_hits_mean"`
	RallyHitsStd  float64 `csv:"rally_hits_std"`
	RallyHitsMax  float64 `csv:"rally_hits_max"`

	// Ball speed (sampled every tick)
	BallSpeedMean float64 `csv:"ball_speed_mean"`
	BallSpeedMax  float64 `csv:"ball_speed_max"`

	// AI controller activity
	AIResamples int `csv:"ai_resamples"`
}

// ComputeRallyStats calculates mean, stddev, and max of rally lengths.
func ComputeRallyStats(lengths []float64) (mean, std, max float64) {
	if len(lengths) == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		std = stat.StdDev(lengths, nil)
	}
	for _, l := range lengths {
		if l > max {
			max = l
		}
	}
	return mean, std, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("score_left", s.ScoreLeft),
		slog.Int("score_right", s.ScoreRight),
		slog.Int("points_left", s.PointsLeft),
		slog.Int("points_right", s.PointsRight),
		slog.Int("serves", s.Serves),
		slog.Int("wall_bounces", s.WallBounces),
		slog.Int("paddle_hits_left", s.PaddleHitsLeft),
		slog.Int("paddle_hits_right", s.PaddleHitsRight),
		slog.Int("rallies", s.Rallies),
		slog.Float64("rally_hits_mean", s.RallyHitsMean),
		slog.Float64("rally_hits_std", s.RallyHitsStd),
		slog.Float64("rally_hits_max", s.RallyHitsMax),
		slog.Float64("ball_speed_mean", s.BallSpeedMean),
		slog.Float64("ball_speed_max", s.BallSpeedMax),
		slog.Int("ai_resamples", s.AIResamples),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"score_left", s.ScoreLeft,
		"score_right", s.ScoreRight,
		"points_left", s.PointsLeft,
		"points_right", s.PointsRight,
		"serves", s.Serves,
		"wall_bounces", s.WallBounces,
		"paddle_hits_left", s.PaddleHitsLeft,
		"paddle_hits_right", s.PaddleHitsRight,
		"rallies", s.Rallies,
		"rally_hits_mean", s.RallyHitsMean,
		"rally_hits_std", s.RallyHitsStd,
		"rally_hits_max", s.RallyHitsMax,
		"ball_speed_mean", s.BallSpeedMean,
		"ball_speed_max", s.BallSpeedMax,
		"ai_resamples", s.AIResamples,
	)
}
