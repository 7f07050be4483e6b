package game

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/pong/components"
)

// Court colors
var (
	colorPaddle = rl.NewColor(240, 240, 240, 255)
	colorBall   = rl.NewColor(0, 200, 180, 255)
	colorNet    = rl.NewColor(90, 90, 90, 255)
	colorScore  = rl.NewColor(200, 200, 200, 255)
	colorHelp   = rl.NewColor(130, 130, 130, 255)
)

const (
	scoreFontSize   = 64
	helpFontSize    = 16
	netSegmentH     = 18
	netGapH         = 12
	netWidth        = 4
	flashScale      = 1.5
	flashDuration   = 0.4
	paddleRoundness = 0.6
)

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawCourt()
	g.drawPaddles()
	g.drawBall()
	g.drawScore()
	g.drawHelp()

	if g.matchOver {
		g.drawMatchOver()
	} else if g.paused {
		g.drawPaused()
	}

	if g.debugMode {
		g.drawDebugOverlay()
	}

	rl.EndDrawing()
	g.perfCollector.RecordFrame()
}

// drawCourt draws the dashed center net.
func (g *Game) drawCourt() {
	cfg := g.config()
	x := int32(cfg.Screen.Width/2) - netWidth/2
	for y := int32(0); y < int32(cfg.Screen.Height); y += netSegmentH + netGapH {
		rl.DrawRectangle(x, y, netWidth, netSegmentH, colorNet)
	}
}

// drawPaddles renders every paddle in the world.
func (g *Game) drawPaddles() {
	query := g.paddleFilter.Query()
	for query.Next() {
		pos, pad := query.Get()
		rect := rl.NewRectangle(pos.X, pos.Y, pad.Width, pad.Height)
		rl.DrawRectangleRounded(rect, paddleRoundness, 6, colorPaddle)
	}
}

func (g *Game) drawBall() {
	pos := g.posMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)
	rect := rl.NewRectangle(pos.X, pos.Y, ball.Size, ball.Size)
	rl.DrawRectangleRounded(rect, 1.0, 8, colorBall)
}

// startScoreFlash kicks off the scale tween on the scorer's number.
func (g *Game) startScoreFlash(scorer components.Side) {
	if g.headless {
		return
	}
	g.scoreFlash = gween.New(flashScale, 1.0, flashDuration, ease.OutQuad)
	g.flashSide = scorer
}

// drawScore renders both scores at the top, flashing the side that just
// scored.
func (g *Game) drawScore() {
	cfg := g.config()
	centerX := int32(cfg.Screen.Width / 2)

	scaleLeft, scaleRight := float32(1), float32(1)
	if g.scoreFlash != nil {
		scale, done := g.scoreFlash.Update(rl.GetFrameTime())
		if done {
			g.scoreFlash = nil
		} else if g.flashSide == components.SideLeft {
			scaleLeft = scale
		} else {
			scaleRight = scale
		}
	}

	drawNumber := func(n int, anchorX int32, scale float32) {
		text := fmt.Sprintf("%d", n)
		size := int32(scoreFontSize * scale)
		width := rl.MeasureText(text, size)
		rl.DrawText(text, anchorX-width/2, 24, size, colorScore)
	}
	drawNumber(g.scoreLeft, centerX-80, scaleLeft)
	drawNumber(g.scoreRight, centerX+80, scaleRight)
}

func (g *Game) drawHelp() {
	cfg := g.config()
	text := "W/S move   SPACE pause   D debug   ESC quit"
	width := rl.MeasureText(text, helpFontSize)
	x := int32(cfg.Screen.Width/2) - width/2
	y := int32(cfg.Screen.Height) - 28
	rl.DrawText(text, x, y, helpFontSize, colorHelp)
}

func (g *Game) drawPaused() {
	cfg := g.config()
	text := "PAUSED"
	width := rl.MeasureText(text, 32)
	rl.DrawText(text, int32(cfg.Screen.Width/2)-width/2, int32(cfg.Screen.Height/2)-60, 32, rl.Yellow)
}

func (g *Game) drawMatchOver() {
	cfg := g.config()
	text := fmt.Sprintf("%s WINS", strings.ToUpper(g.winner.String()))
	width := rl.MeasureText(text, 48)
	rl.DrawText(text, int32(cfg.Screen.Width/2)-width/2, int32(cfg.Screen.Height/2)-80, 48, rl.Yellow)
}

// drawDebugOverlay renders live simulation state in a corner panel.
func (g *Game) drawDebugOverlay() {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)
	rightAI := g.aiMap.Get(g.rightPaddle)
	rightPos := g.posMap.Get(g.rightPaddle)
	rightPad := g.padMap.Get(g.rightPaddle)
	perfStats := g.perfCollector.Stats()

	const panelX, panelY, panelW = int32(8), int32(8), int32(280)
	g.ui.DrawPanel(panelX, panelY, panelW, 280)

	x := panelX + g.ui.Theme.Padding
	y := panelY + g.ui.Theme.Padding
	w := panelW - 2*g.ui.Theme.Padding

	y = g.ui.DrawSectionHeader(x, y, "MATCH")
	y = g.ui.DrawLabelValue(x, y, "tick", fmt.Sprintf("%d", g.tick))
	y = g.ui.DrawLabelValue(x, y, "seed", fmt.Sprintf("%d", g.rngSeed))
	y = g.ui.DrawLabelValue(x, y, "score", fmt.Sprintf("%d - %d", g.scoreLeft, g.scoreRight))
	y = g.ui.DrawSpacer(y, 4)

	y = g.ui.DrawSectionHeader(x, y, "BALL")
	y = g.ui.DrawBar(x, y, "speed", ball.Speed/g.ballParams.MaxSpeed, w)
	y = g.ui.DrawCenteredBar(x, y, "vx", vel.X, g.ballParams.MaxSpeed, w)
	y = g.ui.DrawCenteredBar(x, y, "vy", vel.Y, g.ballParams.MaxSpeed, w)
	y = g.ui.DrawSpacer(y, 4)

	y = g.ui.DrawSectionHeader(x, y, "AI")
	distance := float64(g.aiParams.FieldWidth - ball.CenterX(*pos))
	speed := float64(vel.X)
	if speed < 0 {
		speed = -speed
	}
	y = g.ui.DrawLabelValue(x, y, "target", fmt.Sprintf("%.0f", rightAI.TargetY))
	y = g.ui.DrawLabelValue(x, y, "error", fmt.Sprintf("%+.0f", rightAI.TargetY-rightPad.CenterY(*rightPos)))
	y = g.ui.DrawLabelValue(x, y, "sigma", fmt.Sprintf("%.1f", g.aiParams.AimSigma(distance, speed)))
	y = g.ui.DrawSpacer(y, 4)

	y = g.ui.DrawSectionHeader(x, y, "PERF")
	g.ui.DrawLabelValue(x, y, "tick avg", fmt.Sprintf("%v  fps %.0f", perfStats.AvgTickDuration, perfStats.FPS))
}
