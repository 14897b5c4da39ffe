// Package term hosts the dot field in a terminal. A ticker stands in for
// the display refresh; resize, mouse motion and focus events drive the
// renderer the same way the window host does.
package term

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/dotgrid"
	"github.com/iburimskiy/dotfield/internal/env"
	"github.com/iburimskiy/dotfield/internal/hum"
)

// Host owns the screen and the mounted renderer. Events and ticks are
// consumed on one goroutine, so the renderer never sees concurrent calls.
type Host struct {
	screen tcell.Screen
	surf   *cellSurface
	field  *dotgrid.Renderer
	hum    *hum.Player
	cfg    config.Config
	dirty  bool
}

// New mounts a renderer on an initialised screen. player may be nil.
func New(screen tcell.Screen, cfg config.Config, snap env.Snapshot, player *hum.Player) *Host {
	h := &Host{
		screen: screen,
		surf:   newCellSurface(screen, cfg.Palette(snap.Dark), config.CellWidth, config.CellHeight, cfg.BaseRadius),
		hum:    player,
		cfg:    cfg,
	}
	h.field = dotgrid.New(dotgrid.ParamsFrom(cfg), h.surf)
	h.field.OnPaint(h.onPaint)

	mode := snap.Mode()
	if !mode.Touch {
		screen.EnableMouse(tcell.MouseMotionEvents)
	}
	screen.EnableFocus()

	w, ht := h.surf.pixelSize()
	h.field.Mount(w, ht, mode)
	h.present()
	return h
}

// handle applies one event. It reports false when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.screen.Sync()
		h.surf.resize(cols, rows)
		w, ht := h.surf.pixelSize()
		h.field.Resize(w, ht)

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.field.PointerMove(h.surf.toPixel(x, y))

	case *tcell.EventFocus:
		h.field.SetVisible(ev.Focused)
		if h.hum != nil {
			h.hum.SetPaused(!ev.Focused)
		}
	}
	h.present()
	return true
}

func (h *Host) onPaint(stats dotgrid.FrameStats) {
	h.dirty = true
	if h.hum != nil {
		h.hum.SetLevel(hum.Level(stats.Energy, h.cfg.InfluenceRadius, h.cfg.Spacing))
	}
}

// tick is the refresh hook.
func (h *Host) tick() {
	h.field.Tick()
	h.present()
}

func (h *Host) present() {
	if !h.dirty {
		return
	}
	h.dirty = false
	h.screen.Show()
}

// Close unmounts the renderer and silences the hum. The caller still owns
// the screen.
func (h *Host) Close() {
	h.field.Unmount()
	if h.hum != nil {
		h.hum.Close()
	}
}

// Loop runs until the user quits, ctx is cancelled or the screen goes away.
func (h *Host) Loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / config.TPS)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !h.handle(ev) {
				return
			}
		case <-ticker.C:
			h.tick()
		}
	}
}

// Run takes over the terminal until the user quits.
func Run(ctx context.Context, cfg config.Config, snap env.Snapshot, player *hum.Player) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\ndotfield crashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	h := New(screen, cfg, snap, player)
	log.Printf("term: mounted %dx%d cells grid=%dx%d", h.surf.cols, h.surf.rows, h.field.Dims().Cols, h.field.Dims().Rows)
	h.Loop(ctx)
	h.Close()
	screen.Fini()
	return nil
}
