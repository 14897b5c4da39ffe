package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dotfield/internal/config"
)

const scopeSamples = 512

func (g *Game) overlayText() string {
	dims := g.field.Dims()
	stats := g.field.Stats()
	mode := g.field.Mode()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  up %s\nGrid: %dx%d (%d dots)\nBulk: %d  Influenced: %d  Energy: %.2f\nTouch: %v  Static: %v  Running: %v",
		ebiten.ActualFPS(), ebiten.ActualTPS(), formatDuration(time.Since(g.started)),
		dims.Cols, dims.Rows, dims.Len(),
		stats.Bulk, stats.Influenced, stats.Energy,
		mode.Touch, mode.NoMotion, g.field.Running())
	if g.lastErr != nil {
		msg += "\nError: " + g.lastErr.Error()
	}
	return msg
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.overlayText(), 12, 12)
	g.drawScope(screen)
}

// drawScope plots the hum's recent output along the bottom edge.
func (g *Game) drawScope(screen *ebiten.Image) {
	if g.hum == nil {
		return
	}
	samples := g.hum.Scope(scopeSamples)
	if len(samples) < 2 {
		return
	}

	barHeight := 60
	barY := g.h - barHeight - 20
	barWidth := g.w - 40
	barX := 20
	centerY := float64(barY) + float64(barHeight)/2

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	step := float64(barWidth) / float64(len(samples)-1)
	half := float64(barHeight) / 2
	lineColor := withAlpha(g.pal.Dot, 0.9)
	for i := 1; i < len(samples); i++ {
		x1 := float64(barX) + float64(i-1)*step
		x2 := float64(barX) + float64(i)*step
		y1 := scopeY(samples[i-1][0], centerY, half)
		y2 := scopeY(samples[i][0], centerY, half)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, lineColor, false)
	}
}

// scopeY maps a sample to a row; a full-gain hum spans the whole bar.
func scopeY(sample, centerY, half float64) float64 {
	v := sample / config.HumMaxGain
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return centerY - v*half
}
