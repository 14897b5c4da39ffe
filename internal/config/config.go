package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800

	// Grid geometry
	Spacing = 28.0

	// Pointer influence
	InfluenceRadius = 140.0
	MaxDisplacement = 18.0
	BaseRadius      = 1.1
	Lerp            = 0.12

	// Dot appearance
	BaseAlpha  = 0.13
	AlphaGain  = 0.52
	RadiusGain = 0.5

	// Palette
	DarkBackground  = "#0b0d12"
	DarkDot         = "#9aa7c7"
	LightBackground = "#f4f2ee"
	LightDot        = "#3c4358"

	// Cursor glow spring, mirrors stiffness 180 / damping 28
	GlowStiffness = 180.0
	GlowDamping   = 28.0
	GlowRadius    = 150.0
	GlowAlpha     = 0.08

	// Hum
	HumFrequency = 110.0
	HumMaxGain   = 0.08

	// Terminal cell footprint in pixel units
	CellWidth  = 8.0
	CellHeight = 16.0

	TPS = 60
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the effective session configuration. Field tags double as
// viper keys.
type Config struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	Spacing         float64 `mapstructure:"spacing"`
	InfluenceRadius float64 `mapstructure:"radius"`
	MaxDisplacement float64 `mapstructure:"displacement"`
	BaseRadius      float64 `mapstructure:"dot_radius"`
	Lerp            float64 `mapstructure:"lerp"`

	// Theme is "auto", "dark" or "light".
	Theme           string `mapstructure:"theme"`
	DarkBackground  string `mapstructure:"dark_background"`
	DarkDot         string `mapstructure:"dark_dot"`
	LightBackground string `mapstructure:"light_background"`
	LightDot        string `mapstructure:"light_dot"`

	// ReducedMotion and Touch are "auto", "on" or "off".
	ReducedMotion string `mapstructure:"reduced_motion"`
	Touch         string `mapstructure:"touch"`

	Glow bool `mapstructure:"glow"`
	Hum  bool `mapstructure:"hum"`
	// HumFile is an optional wav, mp3 or flac loop mixed under the hum.
	HumFile string `mapstructure:"hum_file"`
	Debug   bool   `mapstructure:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:           WindowWidth,
		Height:          WindowHeight,
		Spacing:         Spacing,
		InfluenceRadius: InfluenceRadius,
		MaxDisplacement: MaxDisplacement,
		BaseRadius:      BaseRadius,
		Lerp:            Lerp,
		Theme:           "auto",
		DarkBackground:  DarkBackground,
		DarkDot:         DarkDot,
		LightBackground: LightBackground,
		LightDot:        LightDot,
		ReducedMotion:   "auto",
		Touch:           "auto",
		Glow:            true,
	}
}

// Validate checks ranges and palette syntax.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidConfig, c.Spacing)
	}
	if c.InfluenceRadius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfig, c.InfluenceRadius)
	}
	if c.MaxDisplacement < 0 {
		return fmt.Errorf("%w: displacement must not be negative, got %v", ErrInvalidConfig, c.MaxDisplacement)
	}
	if c.BaseRadius <= 0 {
		return fmt.Errorf("%w: dot radius must be positive, got %v", ErrInvalidConfig, c.BaseRadius)
	}
	if c.Lerp <= 0 || c.Lerp >= 1 {
		return fmt.Errorf("%w: lerp must be in (0,1), got %v", ErrInvalidConfig, c.Lerp)
	}
	if !oneOf(c.Theme, "auto", "dark", "light") {
		return fmt.Errorf("%w: theme %q", ErrInvalidConfig, c.Theme)
	}
	if !oneOf(c.ReducedMotion, "auto", "on", "off") {
		return fmt.Errorf("%w: reduced_motion %q", ErrInvalidConfig, c.ReducedMotion)
	}
	if !oneOf(c.Touch, "auto", "on", "off") {
		return fmt.Errorf("%w: touch %q", ErrInvalidConfig, c.Touch)
	}
	if c.HumFile != "" && !SupportedAudio(c.HumFile) {
		return fmt.Errorf("%w: hum_file %q is not wav, mp3 or flac", ErrInvalidConfig, c.HumFile)
	}
	for _, hex := range []string{c.DarkBackground, c.DarkDot, c.LightBackground, c.LightDot} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, hex, err)
		}
	}
	return nil
}

// SupportedAudio reports whether path has a decodable audio extension.
func SupportedAudio(path string) bool {
	return oneOf(strings.ToLower(filepath.Ext(path)), ".wav", ".mp3", ".flac")
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
