// Package config loads promoform settings from built-in defaults, an optional
// JSON or YAML file and PROMOFORM_ prefixed environment variables, in that
// order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "PROMOFORM_"

// Config is the full runtime configuration.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" env:"ADDR"`
	BasePath     string `json:"basePath" yaml:"basePath" env:"BASE_PATH"`
	Confirmation string `json:"confirmation" yaml:"confirmation" env:"CONFIRMATION"`

	Log   LogConfig   `json:"log" yaml:"log" envPrefix:"LOG_"`
	Theme ThemeConfig `json:"theme" yaml:"theme" envPrefix:"THEME_"`

	Particles ParticlesConfig `json:"particles" yaml:"particles" envPrefix:"PARTICLES_"`
}

// LogConfig selects the log level and output format ("console" or "json").
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" env:"FORMAT"`
}

// ThemeConfig selects a theme variant of the built-in manifest.
type ThemeConfig struct {
	Variant string `json:"variant" yaml:"variant" env:"VARIANT"`
}

// ParticlesConfig mirrors the numeric particles.Config tunables.
type ParticlesConfig struct {
	Count        int     `json:"count" yaml:"count" env:"COUNT"`
	LinkDistance float64 `json:"linkDistance" yaml:"linkDistance" env:"LINK_DISTANCE"`
	DotRadius    float64 `json:"dotRadius" yaml:"dotRadius" env:"DOT_RADIUS"`
	GlowRadius   float64 `json:"glowRadius" yaml:"glowRadius" env:"GLOW_RADIUS"`
	MaxSpeed     float64 `json:"maxSpeed" yaml:"maxSpeed" env:"MAX_SPEED"`
	LineWidth    float64 `json:"lineWidth" yaml:"lineWidth" env:"LINE_WIDTH"`
	FrameRate    int     `json:"frameRate" yaml:"frameRate" env:"FRAME_RATE"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := particles.DefaultConfig()
	return Config{
		Addr:     ":8080",
		BasePath: "/",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Particles: ParticlesConfig{
			Count:        p.Count,
			LinkDistance: p.LinkDistance,
			DotRadius:    p.DotRadius,
			GlowRadius:   p.GlowRadius,
			MaxSpeed:     p.MaxSpeed,
			LineWidth:    p.LineWidth,
			FrameRate:    particles.DefaultFrameRate,
		},
	}
}

// Load returns the defaults overlaid with the file at path (when path is not
// empty) and then with environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(data, path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := FromEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFS overlays the defaults with the file at path inside fsys. Environment
// variables are not consulted.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	cfg := Default()
	if fsys == nil {
		return cfg, nil
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overlays cfg with the PROMOFORM_ environment variables that are set.
func FromEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func decode(data []byte, source string, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", source)
	}
	if err := json.Unmarshal(data, cfg); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err == nil {
		return nil
	}
	return fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

// ParticleConfig converts the numeric tunables into a particles.Config,
// keeping the default colours.
func (c Config) ParticleConfig() particles.Config {
	p := particles.DefaultConfig()
	p.Count = c.Particles.Count
	p.LinkDistance = c.Particles.LinkDistance
	p.DotRadius = c.Particles.DotRadius
	p.GlowRadius = c.Particles.GlowRadius
	p.MaxSpeed = c.Particles.MaxSpeed
	p.LineWidth = c.Particles.LineWidth
	return p
}
