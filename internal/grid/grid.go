// Package grid derives the dot lattice that covers a viewport.
package grid

import "math"

// Dims is the lattice for one viewport size. Cell (i,j) sits at (i*Spacing, j*Spacing).
type Dims struct {
	Cols, Rows int
	Spacing    float64
}

// For returns the lattice covering a w×h viewport with one spare cell past
// every edge, so resizes never expose a seam.
func For(w, h, spacing float64) Dims {
	if spacing <= 0 {
		return Dims{}
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Dims{
		Cols:    int(math.Ceil(w/spacing)) + 2,
		Rows:    int(math.Ceil(h/spacing)) + 2,
		Spacing: spacing,
	}
}

// Base returns the undisplaced position of cell (i,j).
func (d Dims) Base(i, j int) (float64, float64) {
	return float64(i) * d.Spacing, float64(j) * d.Spacing
}

// Len is the number of cells in the lattice.
func (d Dims) Len() int { return d.Cols * d.Rows }

// Box returns the inclusive cell range whose base points can fall inside the
// circle of radius r around (cx, cy), clamped to the lattice. ok is false
// when the circle misses the lattice entirely.
func (d Dims) Box(cx, cy, r float64) (i0, i1, j0, j1 int, ok bool) {
	if d.Cols == 0 || d.Rows == 0 {
		return 0, 0, 0, 0, false
	}
	i0, i1, ok = span(cx, r, d.Spacing, d.Cols)
	if !ok {
		return 0, 0, 0, 0, false
	}
	j0, j1, ok = span(cy, r, d.Spacing, d.Rows)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return i0, i1, j0, j1, true
}

func span(c, r, s float64, n int) (int, int, bool) {
	lo := math.Floor((c - r) / s)
	hi := math.Ceil((c + r) / s)
	if hi < 0 || lo > float64(n-1) {
		return 0, 0, false
	}
	return clamp(int(lo), 0, n-1), clamp(int(hi), 0, n-1), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
