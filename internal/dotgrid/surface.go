package dotgrid

// Dot is one filled circle in viewport pixels.
type Dot struct {
	X, Y, R float64
}

// Surface is the drawing target. The renderer owns it exclusively while
// mounted. Colour is the surface's concern; the renderer only supplies
// alpha.
//
// Implementations must not retain the dots slice passed to FillDots; it is
// reused on the next frame.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// FillDots draws every dot in a single batched fill at one alpha.
	FillDots(dots []Dot, alpha float64)
	// FillDot draws a single dot with its own alpha.
	FillDot(d Dot, alpha float64)
}
