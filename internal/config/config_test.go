package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"negative radius", func(c *Config) { c.InfluenceRadius = -1 }},
		{"negative displacement", func(c *Config) { c.MaxDisplacement = -2 }},
		{"zero dot radius", func(c *Config) { c.BaseRadius = 0 }},
		{"lerp of one", func(c *Config) { c.Lerp = 1 }},
		{"lerp of zero", func(c *Config) { c.Lerp = 0 }},
		{"unknown theme", func(c *Config) { c.Theme = "sepia" }},
		{"unknown motion", func(c *Config) { c.ReducedMotion = "maybe" }},
		{"unknown touch", func(c *Config) { c.Touch = "yes" }},
		{"bad colour", func(c *Config) { c.DarkDot = "blue" }},
		{"hum file type", func(c *Config) { c.HumFile = "drone.ogg" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSupportedAudio(t *testing.T) {
	for _, path := range []string{"a.wav", "b.MP3", "dir/c.flac"} {
		if !SupportedAudio(path) {
			t.Errorf("%s should be supported", path)
		}
	}
	for _, path := range []string{"", "d.ogg", "wav"} {
		if SupportedAudio(path) {
			t.Errorf("%q should not be supported", path)
		}
	}
}

func TestPaletteTheme(t *testing.T) {
	cfg := Default()

	dark := cfg.Palette(true)
	if dark.Background.Hex() != DarkBackground {
		t.Errorf("auto+dark env: background %s, want %s", dark.Background.Hex(), DarkBackground)
	}
	light := cfg.Palette(false)
	if light.Dot.Hex() != LightDot {
		t.Errorf("auto+light env: dot %s, want %s", light.Dot.Hex(), LightDot)
	}

	cfg.Theme = "light"
	if got := cfg.Palette(true).Background.Hex(); got != LightBackground {
		t.Errorf("forced light theme: background %s, want %s", got, LightBackground)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "dotfield.yaml")
	data := []byte("spacing: 32\nradius: 100\ntheme: light\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTFIELD_RADIUS", "90")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spacing != 32 {
		t.Errorf("spacing from file: got %v, want 32", cfg.Spacing)
	}
	if cfg.InfluenceRadius != 90 {
		t.Errorf("env should override file radius: got %v, want 90", cfg.InfluenceRadius)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme from file: got %q", cfg.Theme)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DOTFIELD_SPACING=40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DOTFIELD_SPACING") })

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spacing != 40 {
		t.Errorf("spacing from .env: got %v, want 40", cfg.Spacing)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOTFIELD_LERP", "1.5")

	_, err := Load(viper.New(), "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(viper.New(), "does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
