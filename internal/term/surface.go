package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/dotgrid"
)

// cellSurface draws dots as glyphs. Every cell stands for a cellW×cellH
// block of pixel space, so the field math runs unchanged. Terminals have no
// alpha, so each cell keeps the strongest alpha drawn into it this frame and
// pre-blends the dot colour over the background.
type cellSurface struct {
	screen       tcell.Screen
	cellW, cellH float64
	bg, dot      colorful.Color
	bgStyle      tcell.Style
	baseRadius   float64

	cols, rows int
	alpha      []float64
}

func newCellSurface(screen tcell.Screen, pal config.Palette, cellW, cellH, baseRadius float64) *cellSurface {
	s := &cellSurface{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		bg:         pal.Background,
		dot:        pal.Dot,
		baseRadius: baseRadius,
	}
	s.bgStyle = tcell.StyleDefault.Background(rgb(pal.Background))
	cols, rows := screen.Size()
	s.resize(cols, rows)
	return s
}

func (s *cellSurface) resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	if cap(s.alpha) < cols*rows {
		s.alpha = make([]float64, cols*rows)
	}
	s.alpha = s.alpha[:cols*rows]
}

// pixelSize is the viewport the renderer sees.
func (s *cellSurface) pixelSize() (float64, float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// toPixel maps a cell to the centre of its pixel block.
func (s *cellSurface) toPixel(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * s.cellW, (float64(y) + 0.5) * s.cellH
}

func (s *cellSurface) Clear() {
	for i := range s.alpha {
		s.alpha[i] = 0
	}
	s.screen.Fill(' ', s.bgStyle)
}

func (s *cellSurface) FillDots(dots []dotgrid.Dot, alpha float64) {
	for _, d := range dots {
		s.FillDot(d, alpha)
	}
}

func (s *cellSurface) FillDot(d dotgrid.Dot, alpha float64) {
	x := int(math.Floor(d.X / s.cellW))
	y := int(math.Floor(d.Y / s.cellH))
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	idx := y*s.cols + x
	if alpha <= s.alpha[idx] {
		return
	}
	s.alpha[idx] = alpha
	fg := s.bg.BlendRgb(s.dot, clampUnit(alpha))
	s.screen.SetContent(x, y, glyph(d.R-s.baseRadius), nil, s.bgStyle.Foreground(rgb(fg)))
}

// glyph picks a heavier mark the more a dot has grown past its base radius.
func glyph(grown float64) rune {
	switch {
	case grown >= 0.35:
		return '●'
	case grown >= 0.15:
		return '•'
	default:
		return '·'
	}
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
