// AI aiming-error preview tool - interactive visualization with sliders.
//
// Plots the aiming-error stddev against ball distance for several ball
// speeds, and scatters sampled paddle targets so the error tuning can be
// eyeballed before committing it to config.
//
// Usage: go run ./cmd/aipreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotW        = 560
	plotH        = 420
	panelWidth   = windowWidth - plotW - 30

	sigmaAxisMax = 200.0 // y-axis range for the sigma plot
	scatterCount = 300   // sampled targets at the probe distance
)

// curve speeds in px/frame: serve speed, mid-rally, and the cap
var curveSpeeds = []struct {
	speed float64
	color rl.Color
}{
	{6.0, rl.NewColor(0, 170, 255, 255)},
	{9.0, rl.NewColor(255, 170, 0, 255)},
	{12.0, rl.NewColor(255, 80, 80, 255)},
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "AI Error Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Defaults mirror config/defaults.yaml
	params := systems.AIParams{
		SigmaBase:        8.0,
		SigmaPerDistance: 0.05,
		SigmaPerSpeed:    1.2,
		SigmaMax:         80.0,
		FieldWidth:       800,
		FieldHeight:      600,
	}

	rng := rand.New(rand.NewSource(1))
	probeDistance := float32(400)
	samples := make([]float64, scatterCount)
	needsRegen := true

	for !rl.WindowShouldClose() {
		// Probe distance follows the mouse while over the plot
		mouse := rl.GetMousePosition()
		if mouse.X >= 10 && mouse.X < 10+plotW && mouse.Y >= 10 && mouse.Y < 10+plotH {
			d := (mouse.X - 10) / plotW * params.FieldWidth
			if d != probeDistance {
				probeDistance = d
				needsRegen = true
			}
		}

		if needsRegen {
			sigma := params.AimSigma(float64(probeDistance), curveSpeeds[1].speed)
			for i := range samples {
				samples[i] = rng.NormFloat64() * sigma
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawSigmaPlot(params, probeDistance)
		drawScatter(params, probeDistance, samples)

		// Control panel
		panelX := float32(plotW + 20)
		panelY := float32(10)

		rl.DrawText("AI Aiming Error Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY, changed := sliderFloat(panelX, panelY, "Base error (px)", "0", "40",
			&params.SigmaBase, 0, 40, "%.1f")
		regen := changed

		panelY, changed = sliderFloat(panelX, panelY, "Error per px of distance", "0", "0.25",
			&params.SigmaPerDistance, 0, 0.25, "%.3f")
		regen = regen || changed

		panelY, changed = sliderFloat(panelX, panelY, "Error per px/frame of speed", "0", "6",
			&params.SigmaPerSpeed, 0, 6, "%.2f")
		regen = regen || changed

		panelY, changed = sliderFloat(panelX, panelY, "Error cap (px)", "20", "200",
			&params.SigmaMax, 20, 200, "%.0f")
		regen = regen || changed

		if regen {
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params.SigmaBase = 8.0
			params.SigmaPerDistance = 0.05
			params.SigmaPerSpeed = 1.2
			params.SigmaMax = 80.0
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Resample") {
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Move mouse over plot to probe; press C to copy YAML",
			int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// sliderFloat draws a labelled slider and reports whether the value moved.
func sliderFloat(x, y float32, label, minLabel, maxLabel string, value *float64, min, max float64, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		minLabel, maxLabel,
		float32(*value), float32(min), float32(max),
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	changed := float64(next) != *value
	if changed {
		*value = float64(next)
	}
	return y + 35, changed
}

// drawSigmaPlot draws sigma-vs-distance curves for each reference speed.
func drawSigmaPlot(params systems.AIParams, probeDistance float32) {
	const x0, y0 = int32(10), int32(10)

	rl.DrawRectangle(x0, y0, plotW, plotH, rl.NewColor(30, 32, 36, 255))
	rl.DrawRectangleLines(x0, y0, plotW, plotH, rl.DarkGray)

	// Horizontal gridlines every 50px of sigma
	for s := 50; s < sigmaAxisMax; s += 50 {
		py := y0 + plotH - int32(float64(s)/sigmaAxisMax*plotH)
		rl.DrawLine(x0, py, x0+plotW, py, rl.NewColor(60, 60, 60, 255))
		rl.DrawText(fmt.Sprintf("%d", s), x0+4, py-14, 12, rl.Gray)
	}

	for _, c := range curveSpeeds {
		var prevX, prevY int32
		for px := int32(0); px < plotW; px++ {
			distance := float64(px) / plotW * float64(params.FieldWidth)
			sigma := params.AimSigma(distance, c.speed)
			py := y0 + plotH - int32(sigma/sigmaAxisMax*plotH)
			if px > 0 {
				rl.DrawLine(prevX, prevY, x0+px, py, c.color)
			}
			prevX, prevY = x0+px, py
		}
	}

	// Probe marker
	markerX := x0 + int32(probeDistance/params.FieldWidth*plotW)
	rl.DrawLine(markerX, y0, markerX, y0+plotH, rl.NewColor(200, 200, 200, 120))

	legendY := y0 + 8
	for _, c := range curveSpeeds {
		sigma := params.AimSigma(float64(probeDistance), c.speed)
		rl.DrawText(fmt.Sprintf("speed %.0f: sigma %.1f", c.speed, sigma), x0+plotW-170, legendY, 14, c.color)
		legendY += 18
	}
	rl.DrawText(fmt.Sprintf("distance %.0f px", probeDistance), x0+plotW-170, legendY, 14, rl.LightGray)
}

// drawScatter draws sampled target offsets at the probe distance as a
// strip chart below the plot. A paddle-height band is overlaid so it is
// obvious how many targets would still connect.
func drawScatter(params systems.AIParams, probeDistance float32, samples []float64) {
	const x0 = int32(10)
	y0 := int32(10 + plotH + 15)
	stripH := int32(windowHeight) - y0 - 40

	rl.DrawRectangle(x0, y0, plotW, stripH, rl.NewColor(30, 32, 36, 255))
	rl.DrawRectangleLines(x0, y0, plotW, stripH, rl.DarkGray)

	centerY := y0 + stripH/2
	scale := float64(stripH) / 2 / sigmaAxisMax

	// Band a paddle centered on the true target would cover
	paddleHalf := int32(50 * scale)
	rl.DrawRectangle(x0, centerY-paddleHalf, plotW, 2*paddleHalf, rl.NewColor(0, 120, 100, 60))
	rl.DrawLine(x0, centerY, x0+plotW, centerY, rl.NewColor(0, 200, 180, 200))

	hit := 0
	for i, offset := range samples {
		px := x0 + int32(float64(i)/float64(len(samples))*float64(plotW))
		py := centerY + int32(offset*scale)
		if py < y0 {
			py = y0
		}
		if py > y0+stripH {
			py = y0 + stripH
		}
		rl.DrawCircle(px, py, 2, rl.NewColor(255, 170, 0, 180))
		if offset > -50 && offset < 50 {
			hit++
		}
	}

	label := fmt.Sprintf("sampled targets at distance %.0f: %d/%d within a paddle height",
		probeDistance, hit, len(samples))
	rl.DrawText(label, x0, y0+stripH+8, 14, rl.DarkGray)
}

func yamlLines(params systems.AIParams) []string {
	return []string{
		"ai:",
		fmt.Sprintf("  sigma_base: %.1f", params.SigmaBase),
		fmt.Sprintf("  sigma_per_distance: %.3f", params.SigmaPerDistance),
		fmt.Sprintf("  sigma_per_speed: %.2f", params.SigmaPerSpeed),
		fmt.Sprintf("  sigma_max: %.0f", params.SigmaMax),
	}
}
