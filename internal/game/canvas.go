package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/dotgrid"
)

const (
	// DrawTriangles takes uint16 indices.
	maxBatchVertices = math.MaxUint16
	discSegments     = 10
)

// whitePixel is the source texture for untextured triangles, created on
// first use.
var whitePixel *ebiten.Image

func whiteSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// canvas is the offscreen surface the renderer paints into. It keeps the
// last painted frame while the loop is paused or in static mode.
type canvas struct {
	img *ebiten.Image
	bg  color.NRGBA
	dot colorful.Color

	vs []ebiten.Vertex
	is []uint16
}

func newCanvas(w, h int, pal config.Palette) *canvas {
	c := &canvas{dot: pal.Dot, bg: withAlpha(pal.Background, 1)}
	c.resize(w, h)
	return c
}

func (c *canvas) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
	c.img.Fill(c.bg)
}

func (c *canvas) Clear() { c.img.Fill(c.bg) }

// FillDots draws every dot in as few DrawTriangles calls as the index width
// allows.
func (c *canvas) FillDots(dots []dotgrid.Dot, alpha float64) {
	col := withAlpha(c.dot, alpha)
	c.vs, c.is = c.vs[:0], c.is[:0]
	for _, d := range dots {
		if len(c.vs)+discSegments+1 > maxBatchVertices {
			c.flush()
		}
		c.vs, c.is = appendDisc(c.vs, c.is, d, col, discSegments)
	}
	c.flush()
}

func (c *canvas) FillDot(d dotgrid.Dot, alpha float64) {
	vector.DrawFilledCircle(c.img, float32(d.X), float32(d.Y), float32(d.R), withAlpha(c.dot, alpha), true)
}

func (c *canvas) flush() {
	if len(c.is) == 0 {
		return
	}
	c.img.DrawTriangles(c.vs, c.is, whiteSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	c.vs, c.is = c.vs[:0], c.is[:0]
}

// appendDisc appends a triangle fan approximating d.
func appendDisc(vs []ebiten.Vertex, is []uint16, d dotgrid.Dot, col color.NRGBA, segments int) ([]ebiten.Vertex, []uint16) {
	r := float32(col.R) / 255
	g := float32(col.G) / 255
	b := float32(col.B) / 255
	a := float32(col.A) / 255

	base := uint16(len(vs))
	vs = append(vs, ebiten.Vertex{
		DstX: float32(d.X), DstY: float32(d.Y),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	})
	for k := 0; k < segments; k++ {
		theta := 2 * math.Pi * float64(k) / float64(segments)
		vs = append(vs, ebiten.Vertex{
			DstX: float32(d.X + d.R*math.Cos(theta)),
			DstY: float32(d.Y + d.R*math.Sin(theta)),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for k := 0; k < segments; k++ {
		next := (k + 1) % segments
		is = append(is, base, base+1+uint16(k), base+1+uint16(next))
	}
	return vs, is
}
