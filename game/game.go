// Package game wires the ECS world, input, simulation systems, telemetry,
// and rendering into a playable match.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/systems"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/ui"
	"github.com/tanema/gween"
)

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64          // RNG seed (0 = fixed default)
	Headless       bool           // skip all rendering state
	LogStats       bool           // log window stats via slog
	StatsWindowSec float64        // stats window size in seconds (0 = config value)
	OutputDir      string         // CSV output directory ("" = disabled)
	Config         *config.Config // config override (nil = global config)
	AutoPlayer     bool           // drive the left paddle with a scripted controller

	// StatsCallback receives each flushed stats window. Used by the
	// optimizer to collect fitness data without CSV round-trips.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	rngSeed int64

	// Entity handles; the world only ever holds these three.
	leftPaddle  ecs.Entity
	rightPaddle ecs.Entity
	ball        ecs.Entity

	paddleMapper   *ecs.Map2[components.Position, components.Paddle]
	aiPaddleMapper *ecs.Map3[components.Position, components.Paddle, components.AIControl]
	ballMapper     *ecs.Map3[components.Position, components.Velocity, components.Ball]
	paddleFilter   *ecs.Filter2[components.Position, components.Paddle]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	padMap  *ecs.Map1[components.Paddle]
	ballMap *ecs.Map1[components.Ball]
	aiMap   *ecs.Map1[components.AIControl]

	// System parameters, resolved from config once at construction
	ballParams systems.BallParams
	aiParams   systems.AIParams

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	// Control state
	playerDir  systems.MoveDir
	autoPlayer bool

	// Match state
	tick       int32
	scoreLeft  int
	scoreRight int
	maxScore   int
	paused     bool
	debugMode  bool
	matchOver  bool
	winner     components.Side

	// Rendering state (nil in headless mode)
	headless   bool
	ui         *ui.Renderer
	scoreFlash *gween.Tween
	flashSide  components.Side
}

// NewGameWithOptions creates a game instance from explicit options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}

	world := ecs.NewWorld()

	g := &Game{
		world:   world,
		rng:     rand.New(rand.NewSource(seed)),
		rngSeed: seed,
		cfg:     cfg,

		paddleMapper: ecs.NewMap2[
			components.Position,
			components.Paddle,
		](world),
		aiPaddleMapper: ecs.NewMap3[
			components.Position,
			components.Paddle,
			components.AIControl,
		](world),
		ballMapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Ball,
		](world),
		paddleFilter: ecs.NewFilter2[
			components.Position,
			components.Paddle,
		](world),

		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		padMap:  ecs.NewMap1[components.Paddle](world),
		ballMap: ecs.NewMap1[components.Ball](world),
		aiMap:   ecs.NewMap1[components.AIControl](world),

		ballParams: systems.BallParamsFromConfig(cfg),
		aiParams:   systems.AIParamsFromConfig(cfg),

		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		autoPlayer:    opts.AutoPlayer,
		maxScore:      cfg.Match.MaxScore,
		headless:      opts.Headless,
	}

	statsWindowSec := opts.StatsWindowSec
	if statsWindowSec <= 0 {
		statsWindowSec = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindowSec, cfg.Derived.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err, "dir", opts.OutputDir)
		} else {
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
			g.outputManager = om
		}
	}

	if !opts.Headless {
		g.ui = ui.NewRenderer()
	}

	g.spawnEntities()
	g.serve(g.initialServeDir())

	return g
}

// config returns the active configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// spawnEntities creates the two paddles and the ball.
func (g *Game) spawnEntities() {
	cfg := g.config()

	padW := float32(cfg.Paddle.Width)
	padH := float32(cfg.Paddle.Height)
	inset := float32(cfg.Paddle.Inset)
	centerY := cfg.Derived.ScreenH32/2 - padH/2

	leftPos := components.Position{X: inset, Y: centerY}
	leftPad := components.Paddle{
		Side:   components.SideLeft,
		Width:  padW,
		Height: padH,
		Speed:  float32(cfg.Paddle.PlayerSpeed),
	}
	if g.autoPlayer {
		// Self-play: the left paddle gets its own controller and moves at
		// the AI paddle speed so both sides play by the same rules.
		leftPad.Speed = float32(cfg.Paddle.AISpeed)
		leftAI := components.AIControl{TargetY: cfg.Derived.ScreenH32 / 2}
		g.leftPaddle = g.aiPaddleMapper.NewEntity(&leftPos, &leftPad, &leftAI)
	} else {
		g.leftPaddle = g.paddleMapper.NewEntity(&leftPos, &leftPad)
	}

	rightPos := components.Position{X: cfg.Derived.ScreenW32 - inset - padW, Y: centerY}
	rightPad := components.Paddle{
		Side:   components.SideRight,
		Width:  padW,
		Height: padH,
		Speed:  float32(cfg.Paddle.AISpeed),
	}
	rightAI := components.AIControl{TargetY: cfg.Derived.ScreenH32 / 2}
	g.rightPaddle = g.aiPaddleMapper.NewEntity(&rightPos, &rightPad, &rightAI)

	ballPos := components.Position{}
	ballVel := components.Velocity{}
	ball := components.Ball{Size: float32(cfg.Ball.Size)}
	g.ball = g.ballMapper.NewEntity(&ballPos, &ballVel, &ball)
}

// initialServeDir picks which side receives the opening serve.
func (g *Game) initialServeDir() float32 {
	if g.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// serve places the ball at center court moving in the given direction.
func (g *Game) serve(dir float32) {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)
	systems.ServeBall(pos, vel, ball, dir, g.ballParams, g.rng)
	g.collector.RecordServe()
}

// Update runs one frame in graphical mode: input, then simulation.
func (g *Game) Update() {
	g.handleInput()

	if g.paused || g.matchOver {
		return
	}
	g.step()
}

// UpdateHeadless runs one simulation tick without any input or rendering.
func (g *Game) UpdateHeadless() {
	if g.matchOver {
		return
	}
	g.step()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Score returns the current score as (left, right).
func (g *Game) Score() (int, int) {
	return g.scoreLeft, g.scoreRight
}

// MatchOver reports whether a side has reached the match score limit.
func (g *Game) MatchOver() bool {
	return g.matchOver
}

// Winner returns the winning side. Only meaningful when MatchOver is true.
func (g *Game) Winner() components.Side {
	return g.winner
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPlayerDir sets the left paddle's movement intent for the next tick.
// In graphical mode handleInput overwrites this every frame.
func (g *Game) SetPlayerDir(dir systems.MoveDir) {
	g.playerDir = dir
}

// Unload releases output resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
		g.outputManager = nil
	}
}
