// Package env samples the host environment once at startup: motion
// preference, pointer capability and colour scheme.
package env

import (
	"log"
	"os"
	"runtime"
	"strings"

	dark "github.com/thiagokokada/dark-mode-go"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/dotgrid"
)

// Snapshot is the sampled environment. It is never refreshed.
type Snapshot struct {
	ReducedMotion bool
	HoverCapable  bool
	Dark          bool
}

// Mode converts the snapshot into renderer flags.
func (s Snapshot) Mode() dotgrid.Mode {
	return dotgrid.Mode{Touch: !s.HoverCapable, NoMotion: s.ReducedMotion}
}

// Probe holds the query functions. Tests swap them out; any of them may be
// nil, which counts as an unavailable query.
type Probe struct {
	Getenv   func(string) string
	GOOS     string
	DarkMode func() (bool, error)
}

// System returns a probe wired to the real process environment.
func System() Probe {
	return Probe{
		Getenv:   os.Getenv,
		GOOS:     runtime.GOOS,
		DarkMode: dark.IsDarkMode,
	}
}

// motionVars are checked in order; the first one set wins.
var motionVars = []string{"DOTFIELD_REDUCED_MOTION", "REDUCED_MOTION", "NO_MOTION"}

// Sample queries the environment and applies config overrides. Failures fall
// back to the animated, hover-enabled, dark defaults.
func (p Probe) Sample(cfg config.Config) Snapshot {
	s := Snapshot{
		ReducedMotion: p.reducedMotion(),
		HoverCapable:  p.hoverCapable(),
		Dark:          p.dark(),
	}
	switch cfg.ReducedMotion {
	case "on":
		s.ReducedMotion = true
	case "off":
		s.ReducedMotion = false
	}
	switch cfg.Touch {
	case "on":
		s.HoverCapable = false
	case "off":
		s.HoverCapable = true
	}
	log.Printf("env: reduced_motion=%v hover=%v dark=%v", s.ReducedMotion, s.HoverCapable, s.Dark)
	return s
}

func (p Probe) reducedMotion() bool {
	if p.Getenv == nil {
		return false
	}
	for _, name := range motionVars {
		if v := p.Getenv(name); v != "" {
			return truthy(v)
		}
	}
	return false
}

func (p Probe) hoverCapable() bool {
	switch p.GOOS {
	case "android", "ios":
		return false
	}
	return true
}

func (p Probe) dark() bool {
	if p.DarkMode == nil {
		return true
	}
	isDark, err := p.DarkMode()
	if err != nil {
		log.Printf("env: dark mode query failed, assuming dark: %v", err)
		return true
	}
	return isDark
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true
	}
	return false
}
