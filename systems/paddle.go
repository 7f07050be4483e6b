// Package systems implements the per-frame update logic for paddles,
// the ball, and the AI controller as free functions over components.
// Nothing here touches raylib, so every system is testable headless.
package systems

import "github.com/pthm-cable/pong/components"

// MoveDir is a player paddle's per-frame movement intent.
type MoveDir int8

const (
	DirNone MoveDir = 0
	DirUp   MoveDir = -1
	DirDown MoveDir = 1
)

// MovePaddle shifts a paddle vertically by dy and clamps it to the field.
// Out-of-bounds requests are silently clamped.
func MovePaddle(pos *components.Position, pad *components.Paddle, dy, fieldHeight float32) {
	pos.Y += dy
	if pos.Y < 0 {
		pos.Y = 0
	}
	if pos.Y+pad.Height > fieldHeight {
		pos.Y = fieldHeight - pad.Height
	}
}

// StepPlayerPaddle applies one frame of keyboard-driven movement.
func StepPlayerPaddle(pos *components.Position, pad *components.Paddle, dir MoveDir, fieldHeight float32) {
	if dir == DirNone {
		return
	}
	MovePaddle(pos, pad, float32(dir)*pad.Speed, fieldHeight)
}

// StepPaddleTowardTarget moves a paddle toward a target center y at its
// capped speed. Within one step of the target it snaps onto it instead of
// overshooting, so the paddle idles there rather than jittering.
func StepPaddleTowardTarget(pos *components.Position, pad *components.Paddle, targetY, fieldHeight float32) {
	dy := targetY - pad.CenterY(*pos)
	if dy > pad.Speed {
		dy = pad.Speed
	} else if dy < -pad.Speed {
		dy = -pad.Speed
	}
	MovePaddle(pos, pad, dy, fieldHeight)
}
