package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DOTFIELD_SPACING=32.
const EnvPrefix = "DOTFIELD"

// Load resolves the effective configuration. Precedence, lowest first:
// defaults, config file, .env and process environment, flags already bound
// on v. An empty path skips the file layer.
func Load(v *viper.Viper, path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: ignoring .env: %v", err)
	}

	def := Default()
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("spacing", def.Spacing)
	v.SetDefault("radius", def.InfluenceRadius)
	v.SetDefault("displacement", def.MaxDisplacement)
	v.SetDefault("dot_radius", def.BaseRadius)
	v.SetDefault("lerp", def.Lerp)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("dark_background", def.DarkBackground)
	v.SetDefault("dark_dot", def.DarkDot)
	v.SetDefault("light_background", def.LightBackground)
	v.SetDefault("light_dot", def.LightDot)
	v.SetDefault("reduced_motion", def.ReducedMotion)
	v.SetDefault("touch", def.Touch)
	v.SetDefault("glow", def.Glow)
	v.SetDefault("hum", def.Hum)
	v.SetDefault("hum_file", def.HumFile)
	v.SetDefault("debug", def.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Printf("config: loaded %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
