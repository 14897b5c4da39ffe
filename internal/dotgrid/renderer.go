// Package dotgrid renders the interactive dot field: a lattice of dim dots
// covering the viewport, where dots near the pointer are pushed outward and
// brightened.
package dotgrid

import (
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/grid"
	"github.com/iburimskiy/dotfield/internal/loop"
)

// OffScreen is where the pointer rests before the first move. It is far
// enough from any viewport that no dot starts inside the influence radius.
const OffScreen = -9999.0

// Mode is the environment sampled once at mount.
type Mode struct {
	// Touch means no hover-capable pointer: no tracking, bulk pass only.
	Touch bool
	// NoMotion requests a single static paint and no frame loop.
	NoMotion bool
}

// FrameStats describes the last paint.
type FrameStats struct {
	Bulk       int
	Influenced int
	// Energy is the summed ratio of every influenced dot.
	Energy   float64
	PointerX float64
	PointerY float64
	Static   bool
}

// Renderer owns the field state for one mounted surface. All methods must
// be called from the host's single game goroutine.
type Renderer struct {
	p    Params
	surf Surface
	mode Mode

	w, h float64
	dims grid.Dims

	rawX, rawY float64
	smX, smY   float64

	loop      *loop.Loop
	mounted   bool
	animating bool
	visible   bool

	bulk    []Dot
	stats   FrameStats
	paints  int
	onPaint func(FrameStats)
}

func New(p Params, surf Surface) *Renderer {
	r := &Renderer{
		p:    p,
		surf: surf,
		rawX: OffScreen,
		rawY: OffScreen,
		smX:  OffScreen,
		smY:  OffScreen,
	}
	r.loop = loop.New(r.frame)
	return r
}

// OnPaint registers a hook called after every paint, static or animated.
func (r *Renderer) OnPaint(fn func(FrameStats)) { r.onPaint = fn }

// Mount measures the viewport and starts either the static paint or the
// frame loop. A renderer without a surface mounts as a silent no-op and
// reports false.
func (r *Renderer) Mount(w, h float64, mode Mode) bool {
	if r.surf == nil || r.mounted {
		return false
	}
	r.mounted = true
	r.visible = true
	r.mode = mode
	r.measure(w, h)

	if mode.NoMotion {
		r.paintStatic()
		return true
	}
	r.animating = true
	r.loop.Start()
	return true
}

// Unmount cancels the loop and detaches every input. Later calls draw
// nothing.
func (r *Renderer) Unmount() {
	if !r.mounted {
		return
	}
	r.loop.Stop()
	r.mounted = false
	r.animating = false
}

// Tick is the display-refresh hook.
func (r *Renderer) Tick() bool {
	if !r.mounted {
		return false
	}
	return r.loop.Tick()
}

// PointerMove records the latest pointer position. It never paints; only
// the most recent position before a frame is used.
func (r *Renderer) PointerMove(x, y float64) {
	if !r.mounted || r.mode.Touch {
		return
	}
	r.rawX, r.rawY = x, y
}

// Resize recomputes the lattice. Animated mode picks it up on the next
// frame; static mode repaints once because hosts reallocate the surface on
// resize.
func (r *Renderer) Resize(w, h float64) {
	if !r.mounted {
		return
	}
	r.measure(w, h)
	if r.mode.NoMotion {
		r.paintStatic()
	}
}

// SetVisible pauses the loop when hidden and resumes it when shown again.
// Static mode has no loop and ignores visibility.
func (r *Renderer) SetVisible(visible bool) {
	if !r.mounted || r.visible == visible {
		return
	}
	r.visible = visible
	if !r.animating {
		return
	}
	if visible {
		r.loop.Start()
	} else {
		r.loop.Stop()
	}
}

func (r *Renderer) Mounted() bool   { return r.mounted }
func (r *Renderer) Animating() bool { return r.animating }
func (r *Renderer) Running() bool   { return r.loop.Running() }
func (r *Renderer) Mode() Mode      { return r.mode }
func (r *Renderer) Dims() grid.Dims { return r.dims }
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Paints counts completed paints since construction.
func (r *Renderer) Paints() int { return r.paints }

// Pointer returns the raw and smoothed pointer positions.
func (r *Renderer) Pointer() (rawX, rawY, smoothX, smoothY float64) {
	return r.rawX, r.rawY, r.smX, r.smY
}

func (r *Renderer) measure(w, h float64) {
	r.w, r.h = w, h
	r.dims = grid.For(w, h, r.p.Spacing)
}

func (r *Renderer) paintStatic() {
	r.surf.Clear()
	bulk := r.bulk[:0]
	for j := 0; j < r.dims.Rows; j++ {
		for i := 0; i < r.dims.Cols; i++ {
			x, y := r.dims.Base(i, j)
			bulk = append(bulk, Dot{X: x, Y: y, R: r.p.DotRadius})
		}
	}
	r.surf.FillDots(bulk, config.BaseAlpha)
	r.bulk = bulk
	r.finish(FrameStats{Bulk: len(bulk), PointerX: r.smX, PointerY: r.smY, Static: true})
}

func (r *Renderer) frame() {
	r.smX += (r.rawX - r.smX) * r.p.Lerp
	r.smY += (r.rawY - r.smY) * r.p.Lerp
	sx, sy := r.smX, r.smY
	rr := r.p.Radius * r.p.Radius

	r.surf.Clear()

	bulk := r.bulk[:0]
	for j := 0; j < r.dims.Rows; j++ {
		for i := 0; i < r.dims.Cols; i++ {
			x, y := r.dims.Base(i, j)
			if !r.mode.Touch {
				dx, dy := x-sx, y-sy
				if dx*dx+dy*dy < rr {
					continue
				}
			}
			bulk = append(bulk, Dot{X: x, Y: y, R: r.p.DotRadius})
		}
	}
	r.surf.FillDots(bulk, config.BaseAlpha)
	r.bulk = bulk

	stats := FrameStats{Bulk: len(bulk), PointerX: sx, PointerY: sy}
	if !r.mode.Touch {
		r.influencePass(sx, sy, rr, &stats)
	}
	r.finish(stats)
}

func (r *Renderer) influencePass(sx, sy, rr float64, stats *FrameStats) {
	i0, i1, j0, j1, ok := r.dims.Box(sx, sy, r.p.Radius)
	if !ok {
		return
	}
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			x, y := r.dims.Base(i, j)
			dx, dy := x-sx, y-sy
			dist2 := dx*dx + dy*dy
			if dist2 >= rr {
				continue
			}
			push := r.p.push(dx, dy, dist2)
			r.surf.FillDot(Dot{X: x + push.OffX, Y: y + push.OffY, R: push.Radius}, push.Alpha)
			stats.Influenced++
			stats.Energy += push.Ratio
		}
	}
}

func (r *Renderer) finish(stats FrameStats) {
	r.stats = stats
	r.paints++
	if r.onPaint != nil {
		r.onPaint(stats)
	}
}
