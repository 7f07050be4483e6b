// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Ball      BallConfig      `yaml:"ball"`
	AI        AIConfig        `yaml:"ai"`
	Match     MatchConfig     `yaml:"match"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PaddleConfig holds paddle geometry and movement parameters.
// Speeds are in pixels per frame at the target frame rate.
type PaddleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Inset       float64 `yaml:"inset"`        // distance from wall to paddle
	PlayerSpeed float64 `yaml:"player_speed"` // left paddle, keyboard-driven
	AISpeed     float64 `yaml:"ai_speed"`     // right paddle, target-seeking
}

// BallConfig holds ball geometry and physics parameters.
// Angles are expressed as fractions of pi so the YAML stays readable.
type BallConfig struct {
	Size           float64 `yaml:"size"`
	InitialSpeed   float64 `yaml:"initial_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // added per paddle hit
	BounceAngle    float64 `yaml:"bounce_angle"`    // max paddle deflection, fraction of pi
	ServeAngle     float64 `yaml:"serve_angle"`     // max serve angle, fraction of pi
}

// AIConfig holds the AI controller's reaction and aiming-error parameters.
// The error stddev is linear in horizontal distance and ball speed,
// clamped to sigma_max, and resampled fresh at every reaction interval.
type AIConfig struct {
	ReactionDelay    float64 `yaml:"reaction_delay"` // seconds between resamples
	SigmaBase        float64 `yaml:"sigma_base"`
	SigmaPerDistance float64 `yaml:"sigma_per_distance"`
	SigmaPerSpeed    float64 `yaml:"sigma_per_speed"`
	SigmaMax         float64 `yaml:"sigma_max"`
	CenterBias       float64 `yaml:"center_bias"`    // drift toward center when ball recedes
	RecenterSigma    float64 `yaml:"recenter_sigma"` // noise while recentering
}

// MatchConfig holds match termination parameters.
type MatchConfig struct {
	MaxScore int `yaml:"max_score"` // 0 = endless
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32      float32 // Screen.Width as float32
	ScreenH32      float32 // Screen.Height as float32
	DT             float32 // seconds per frame
	ReactionTicks  int32   // AI.ReactionDelay in frames, at least 1
	BounceAngleRad float32 // Ball.BounceAngle * pi
	ServeAngleRad  float32 // Ball.ServeAngle * pi
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived recalculates values derived from loaded config.
func (c *Config) ComputeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float32(fps)

	ticks := int32(c.AI.ReactionDelay * float64(fps))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.ReactionTicks = ticks

	c.Derived.BounceAngleRad = float32(c.Ball.BounceAngle * math.Pi)
	c.Derived.ServeAngleRad = float32(c.Ball.ServeAngle * math.Pi)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
