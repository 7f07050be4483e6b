package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/systems"
)

// handleInput processes keyboard input for one frame.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Debug overlay toggle
	if rl.IsKeyPressed(rl.KeyD) {
		g.debugMode = !g.debugMode
	}

	// Held keys set movement intent for this frame. Holding both
	// directions cancels out.
	dir := systems.DirNone
	if rl.IsKeyDown(rl.KeyW) {
		dir += systems.DirUp
	}
	if rl.IsKeyDown(rl.KeyS) {
		dir += systems.DirDown
	}
	g.playerDir = dir
}
