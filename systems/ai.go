package systems

import (
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

// AIParams holds the AI controller's reaction and error constants.
type AIParams struct {
	ReactionTicks    int32 // frames between target resamples
	SigmaBase        float64
	SigmaPerDistance float64
	SigmaPerSpeed    float64
	SigmaMax         float64
	CenterBias       float64
	RecenterSigma    float64
	FieldWidth       float32
	FieldHeight      float32
}

// AIParamsFromConfig extracts AI parameters from a loaded config.
func AIParamsFromConfig(cfg *config.Config) AIParams {
	return AIParams{
		ReactionTicks:    cfg.Derived.ReactionTicks,
		SigmaBase:        cfg.AI.SigmaBase,
		SigmaPerDistance: cfg.AI.SigmaPerDistance,
		SigmaPerSpeed:    cfg.AI.SigmaPerSpeed,
		SigmaMax:         cfg.AI.SigmaMax,
		CenterBias:       cfg.AI.CenterBias,
		RecenterSigma:    cfg.AI.RecenterSigma,
		FieldWidth:       cfg.Derived.ScreenW32,
		FieldHeight:      cfg.Derived.ScreenH32,
	}
}

// AimSigma returns the aiming-error stddev for a ball at the given
// horizontal distance from the AI's goal line, moving at |vx| = speed.
// Further and faster balls are harder to track.
func (p AIParams) AimSigma(distance, speed float64) float64 {
	if distance < 1 {
		distance = 1
	}
	if speed < 1 {
		speed = 1
	}
	sigma := p.SigmaBase + distance*p.SigmaPerDistance + speed*p.SigmaPerSpeed
	if sigma > p.SigmaMax {
		sigma = p.SigmaMax
	}
	return sigma
}

// UpdateAITarget advances the controller by one frame. The stored target
// stays frozen between reaction intervals; that staleness is what makes
// the AI beatable. Returns true when the target was resampled this frame.
//
// On a resample: if the ball is approaching (vx > 0, AI defends the right
// side) the target is the ball's center plus gaussian aiming error. If the
// ball is receding the target drifts toward screen center instead.
func UpdateAITarget(
	ai *components.AIControl,
	ballPos components.Position, ballVel components.Velocity, ball components.Ball,
	p AIParams, rng *rand.Rand,
) bool {
	ai.SinceResample++
	if ai.SinceResample < p.ReactionTicks {
		return false
	}
	ai.SinceResample = 0

	if ballVel.X > 0 {
		distance := float64(p.FieldWidth - ball.CenterX(ballPos))
		speed := float64(ballVel.X)
		if speed < 0 {
			speed = -speed
		}
		sigma := p.AimSigma(distance, speed)
		ai.TargetY = ball.CenterY(ballPos) + float32(rng.NormFloat64()*sigma)
	} else {
		noise := rng.NormFloat64() * p.RecenterSigma
		center := float64(p.FieldHeight)/2 + noise
		ai.TargetY = float32((1-p.CenterBias)*float64(ai.TargetY) + p.CenterBias*center)
	}
	return true
}

// UpdateAITargetLeft drives a left-side controller by mirroring the ball
// horizontally and reusing the right-side logic. Used for scripted
// self-play where both paddles are machine-controlled.
func UpdateAITargetLeft(
	ai *components.AIControl,
	ballPos components.Position, ballVel components.Velocity, ball components.Ball,
	p AIParams, rng *rand.Rand,
) bool {
	mpos := components.Position{X: p.FieldWidth - ballPos.X - ball.Size, Y: ballPos.Y}
	mvel := components.Velocity{X: -ballVel.X, Y: ballVel.Y}
	return UpdateAITarget(ai, mpos, mvel, ball, p, rng)
}
