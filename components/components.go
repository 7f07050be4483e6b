// Package components defines ECS components for the game entities.
package components

// Side identifies which half of the playfield a paddle defends,
// and doubles as the scorer identity in score events.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// String returns a human-readable side name.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Position represents an entity's top-left corner in screen space.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per frame.
type Velocity struct {
	X, Y float32
}

// Paddle holds paddle geometry and movement capability.
// Player and AI paddles share this type; they differ only in where
// their movement intent comes from.
type Paddle struct {
	Side   Side
	Width  float32
	Height float32
	Speed  float32 // max vertical movement per frame
}

// CenterY returns the paddle's vertical center for a given position.
func (p Paddle) CenterY(pos Position) float32 {
	return pos.Y + p.Height/2
}

// Ball holds ball geometry and its current speed magnitude.
// Velocity direction lives in the Velocity component; Speed is kept
// separately so paddle bounces can accelerate without re-deriving it.
type Ball struct {
	Size  float32
	Speed float32
}

// CenterX returns the ball's horizontal center for a given position.
func (b Ball) CenterX(pos Position) float32 {
	return pos.X + b.Size/2
}

// CenterY returns the ball's vertical center for a given position.
func (b Ball) CenterY(pos Position) float32 {
	return pos.Y + b.Size/2
}

// AIControl holds the AI controller's internal state.
// TargetY is a deliberately stale estimate: it changes only when
// SinceResample reaches the reaction interval, never every frame.
type AIControl struct {
	TargetY       float32 // desired paddle center y
	SinceResample int32   // frames since the target was last recomputed
}
