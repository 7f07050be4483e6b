package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

// BallParams holds the field geometry and physics constants the ball
// step needs. Extracted from config once at game start.
type BallParams struct {
	FieldWidth     float32
	FieldHeight    float32
	InitialSpeed   float32
	MaxSpeed       float32
	SpeedIncrement float32
	BounceAngle    float32 // max deflection off a paddle, radians
	ServeAngle     float32 // max serve angle, radians
}

// BallParamsFromConfig extracts ball parameters from a loaded config.
func BallParamsFromConfig(cfg *config.Config) BallParams {
	return BallParams{
		FieldWidth:     cfg.Derived.ScreenW32,
		FieldHeight:    cfg.Derived.ScreenH32,
		InitialSpeed:   float32(cfg.Ball.InitialSpeed),
		MaxSpeed:       float32(cfg.Ball.MaxSpeed),
		SpeedIncrement: float32(cfg.Ball.SpeedIncrement),
		BounceAngle:    cfg.Derived.BounceAngleRad,
		ServeAngle:     cfg.Derived.ServeAngleRad,
	}
}

// StepResult reports what happened during a single ball update.
type StepResult struct {
	WallBounce bool
	PaddleHit  bool
	PaddleSide components.Side // valid when PaddleHit
	Scored     bool
	Scorer     components.Side // valid when Scored
}

// ServeBall re-centers the ball and gives it a fresh serve velocity at the
// initial speed. dir is -1 to serve left, +1 to serve right; the serve angle
// is uniform in [-ServeAngle, +ServeAngle].
func ServeBall(pos *components.Position, vel *components.Velocity, ball *components.Ball, dir float32, p BallParams, rng *rand.Rand) {
	pos.X = p.FieldWidth/2 - ball.Size/2
	pos.Y = p.FieldHeight/2 - ball.Size/2

	angle := (rng.Float64()*2 - 1) * float64(p.ServeAngle)
	ball.Speed = p.InitialSpeed
	vel.X = float32(math.Cos(angle)) * ball.Speed * dir
	vel.Y = float32(math.Sin(angle)) * ball.Speed
}

// StepBall advances the ball one frame and resolves wall bounces, paddle
// bounces, and scoring. On a score the ball is re-served toward the side
// that conceded and the result names the scorer.
func StepBall(
	pos *components.Position, vel *components.Velocity, ball *components.Ball,
	leftPos components.Position, leftPad components.Paddle,
	rightPos components.Position, rightPad components.Paddle,
	p BallParams, rng *rand.Rand,
) StepResult {
	var res StepResult

	pos.X += vel.X
	pos.Y += vel.Y

	// Top/bottom walls: clamp inside and reflect vy. The else-if keeps the
	// reflection to one flip per frame even on degenerate geometry.
	if pos.Y <= 0 {
		pos.Y = 0
		vel.Y = -vel.Y
		res.WallBounce = true
	} else if pos.Y+ball.Size >= p.FieldHeight {
		pos.Y = p.FieldHeight - ball.Size
		vel.Y = -vel.Y
		res.WallBounce = true
	}

	// Paddle collisions only count when the ball is moving toward the paddle,
	// otherwise a ball exiting a paddle's box would re-bounce.
	if vel.X < 0 && overlapsPaddle(*pos, *ball, leftPos, leftPad) {
		bounceOffPaddle(pos, vel, ball, leftPos, leftPad, p)
		res.PaddleHit = true
		res.PaddleSide = components.SideLeft
	} else if vel.X > 0 && overlapsPaddle(*pos, *ball, rightPos, rightPad) {
		bounceOffPaddle(pos, vel, ball, rightPos, rightPad, p)
		res.PaddleHit = true
		res.PaddleSide = components.SideRight
	}

	// Scoring: ball fully past an edge. Serve toward the conceding side.
	if pos.X+ball.Size < 0 {
		res.Scored = true
		res.Scorer = components.SideRight
		ServeBall(pos, vel, ball, -1, p, rng)
	} else if pos.X > p.FieldWidth {
		res.Scored = true
		res.Scorer = components.SideLeft
		ServeBall(pos, vel, ball, 1, p, rng)
	}

	return res
}

// overlapsPaddle reports AABB overlap between the ball and a paddle.
func overlapsPaddle(pos components.Position, ball components.Ball, padPos components.Position, pad components.Paddle) bool {
	return pos.X < padPos.X+pad.Width &&
		pos.X+ball.Size > padPos.X &&
		pos.Y < padPos.Y+pad.Height &&
		pos.Y+ball.Size > padPos.Y
}

// bounceOffPaddle reflects the ball off a paddle. The outgoing angle scales
// with the contact offset from the paddle center (edge hits deflect harder),
// and the speed grows by SpeedIncrement up to MaxSpeed. The ball is pushed
// flush against the paddle face so it cannot stick inside.
func bounceOffPaddle(pos *components.Position, vel *components.Velocity, ball *components.Ball, padPos components.Position, pad components.Paddle, p BallParams) {
	var dir float32
	if pad.Side == components.SideLeft {
		pos.X = padPos.X + pad.Width
		dir = 1
	} else {
		pos.X = padPos.X - ball.Size
		dir = -1
	}

	offset := (ball.CenterY(*pos) - pad.CenterY(padPos)) / (pad.Height / 2)
	if offset > 1 {
		offset = 1
	} else if offset < -1 {
		offset = -1
	}

	ball.Speed += p.SpeedIncrement
	if ball.Speed > p.MaxSpeed {
		ball.Speed = p.MaxSpeed
	}

	angle := float64(offset * p.BounceAngle)
	vel.X = float32(math.Cos(angle)) * ball.Speed * dir
	vel.Y = float32(math.Sin(angle)) * ball.Speed
}
