package game

import (
	"errors"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/dotgrid"
	"github.com/iburimskiy/dotfield/internal/env"
	"github.com/iburimskiy/dotfield/internal/glow"
	"github.com/iburimskiy/dotfield/internal/hum"
)

// Game hosts the dot field in an Ebitengine window. Update is the refresh
// callback, Layout reports resizes and focus changes stand in for page
// visibility.
type Game struct {
	cfg config.Config
	env env.Snapshot
	pal config.Palette

	canvas *canvas
	field  *dotgrid.Renderer
	glow   *glow.Follower
	hum    *hum.Player

	w, h    int
	focused bool
	cursorX int
	cursorY int
	debug   bool
	started time.Time
	lastErr error
	closed  bool
}

// NewGame builds and mounts the field. A nil hum player runs silently.
func NewGame(cfg config.Config, snap env.Snapshot, player *hum.Player) *Game {
	pal := cfg.Palette(snap.Dark)
	g := &Game{
		cfg:     cfg,
		env:     snap,
		pal:     pal,
		canvas:  newCanvas(cfg.Width, cfg.Height, pal),
		hum:     player,
		w:       cfg.Width,
		h:       cfg.Height,
		focused: true,
		cursorX: int(dotgrid.OffScreen),
		cursorY: int(dotgrid.OffScreen),
		debug:   cfg.Debug,
		started: time.Now(),
	}
	g.field = dotgrid.New(dotgrid.ParamsFrom(cfg), g.canvas)
	g.field.OnPaint(g.onPaint)

	mode := snap.Mode()
	if cfg.Glow && !mode.Touch && !mode.NoMotion {
		g.glow = glow.New(config.TPS, config.GlowStiffness, config.GlowDamping)
	}
	g.field.Mount(float64(g.w), float64(g.h), mode)
	log.Printf("game: mounted %dx%d grid=%dx%d touch=%v static=%v",
		g.w, g.h, g.field.Dims().Cols, g.field.Dims().Rows, mode.Touch, mode.NoMotion)
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.saveSnapshot(); err != nil {
			g.lastErr = err
			log.Printf("game: snapshot failed: %v", err)
			reportError(err)
		}
	}

	g.setFocused(ebiten.IsFocused())

	if g.env.HoverCapable {
		x, y := ebiten.CursorPosition()
		if x != g.cursorX || y != g.cursorY {
			g.cursorX, g.cursorY = x, y
			g.field.PointerMove(float64(x), float64(y))
			if g.glow != nil {
				g.glow.Target(float64(x), float64(y))
			}
		}
	}

	if g.field.Tick() && g.glow != nil {
		g.glow.Step()
	}
	return nil
}

func (g *Game) setFocused(focused bool) {
	if focused == g.focused {
		return
	}
	g.focused = focused
	g.field.SetVisible(focused)
	if g.hum != nil {
		g.hum.SetPaused(!focused)
	}
	log.Printf("game: focused=%v", focused)
}

func (g *Game) onPaint(stats dotgrid.FrameStats) {
	if g.hum == nil {
		return
	}
	g.hum.SetLevel(hum.Level(stats.Energy, g.cfg.InfluenceRadius, g.cfg.Spacing))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.img, nil)
	g.drawGlow(screen)
	if g.debug {
		g.drawOverlay(screen)
	}
}

// drawGlow paints the halo as a few stacked translucent discs.
func (g *Game) drawGlow(screen *ebiten.Image) {
	if g.glow == nil {
		return
	}
	x, y := g.glow.Position()
	for i := 3; i >= 1; i-- {
		r := config.GlowRadius * float64(i) / 3
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), withAlpha(g.pal.Dot, config.GlowAlpha/2), true)
	}
}

// Layout follows the window size so the field always fills the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.w || outsideHeight != g.h) {
		g.w, g.h = outsideWidth, outsideHeight
		g.canvas.resize(g.w, g.h)
		g.field.Resize(float64(g.w), float64(g.h))
	}
	return g.w, g.h
}

// Close unmounts the field and releases the speaker. Safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.field.Unmount()
	if g.hum != nil {
		g.hum.Close()
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Config, snap env.Snapshot, player *hum.Player) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("dotfield - S: snapshot, D: debug, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := NewGame(cfg, snap, player)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
