package dotgrid

import (
	"math"

	"github.com/iburimskiy/dotfield/internal/config"
)

// Params are the session constants of the field. They never change after
// mount.
type Params struct {
	Spacing      float64
	Radius       float64
	Displacement float64
	DotRadius    float64
	Lerp         float64
}

// ParamsFrom copies the field tunables out of a validated config.
func ParamsFrom(cfg config.Config) Params {
	return Params{
		Spacing:      cfg.Spacing,
		Radius:       cfg.InfluenceRadius,
		Displacement: cfg.MaxDisplacement,
		DotRadius:    cfg.BaseRadius,
		Lerp:         cfg.Lerp,
	}
}

// Push is the effect of the pointer on one base point.
type Push struct {
	OffX, OffY float64
	Alpha      float64
	Radius     float64
	Ratio      float64
}

// Influence computes the push for a base point offset (dx, dy) from the
// smoothed pointer. ok is false at or beyond the influence radius, where the
// point belongs to the bulk pass.
func (p Params) Influence(dx, dy float64) (Push, bool) {
	dist2 := dx*dx + dy*dy
	if dist2 >= p.Radius*p.Radius {
		return Push{}, false
	}
	return p.push(dx, dy, dist2), true
}

func (p Params) push(dx, dy, dist2 float64) Push {
	dist := math.Sqrt(dist2)
	ratio := 1 - dist/p.Radius
	force := ratio * ratio * p.Displacement
	angle := math.Atan2(dy, dx)
	return Push{
		OffX:   math.Cos(angle) * force,
		OffY:   math.Sin(angle) * force,
		Alpha:  config.BaseAlpha + ratio*config.AlphaGain,
		Radius: p.DotRadius + ratio*config.RadiusGain,
		Ratio:  ratio,
	}
}
