package config

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the resolved background and dot colour for a session.
type Palette struct {
	Background colorful.Color
	Dot        colorful.Color
}

// Palette picks the light or dark pair. Theme "auto" defers to darkEnv.
// Colours are validated by Validate; a bad hex here falls back to black.
func (c Config) Palette(darkEnv bool) Palette {
	dark := darkEnv
	switch c.Theme {
	case "dark":
		dark = true
	case "light":
		dark = false
	}
	if dark {
		return Palette{Background: hexOrBlack(c.DarkBackground), Dot: hexOrBlack(c.DarkDot)}
	}
	return Palette{Background: hexOrBlack(c.LightBackground), Dot: hexOrBlack(c.LightDot)}
}

func hexOrBlack(s string) colorful.Color {
	col, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return col
}
