// Package palette resolves go-theme manifests into renderer configuration and
// turns colour tokens into the colours used by the form page and the particle
// background.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// Token names read by this package.
const (
	TokenBrand           = "brand"
	TokenSurface         = "surface"
	TokenText            = "text"
	TokenError           = "error"
	TokenDot             = "particle.dot"
	TokenDotAlpha        = "particle.dot.alpha"
	TokenLine            = "particle.line"
	TokenLineAlpha       = "particle.line.alpha"
	TokenBackground      = "particle.background"
	TokenBackgroundAlpha = "particle.background.alpha"
)

// DefaultThemeName is the name of the built-in manifest.
const DefaultThemeName = "spidr"

// ErrUnknownVariant is returned when a variant is not declared by a manifest.
var ErrUnknownVariant = errors.New("palette: unknown theme variant")

// DefaultManifest returns the built-in dark theme with a light variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBrand:           "#3ec6e0",
			TokenSurface:         "#0b1b2b",
			TokenText:            "#f4f8fb",
			TokenError:           "#ff6b6b",
			TokenDot:             "#3ec6e0",
			TokenDotAlpha:        "0.7",
			TokenLine:            "#ffffff",
			TokenLineAlpha:       "0.13",
			TokenBackground:      "#000000",
			TokenBackgroundAlpha: "0",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "promoform.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					TokenSurface:   "#f4f8fb",
					TokenText:      "#0b1b2b",
					TokenLine:      "#0b1b2b",
					TokenLineAlpha: "0.18",
				},
			},
		},
	}
}

// Resolve registers manifest in a go-theme registry and selects variant from
// it. An empty variant selects the base tokens.
func Resolve(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("palette: manifest is required")
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q (theme %s)", ErrUnknownVariant, variant, manifest.Name)
		}
	}

	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("palette: register theme %s: %w", manifest.Name, err)
	}
	return Select(&theme.Selector{Registry: registry, DefaultTheme: manifest.Name}, manifest.Name, variant)
}

// Select resolves name and variant through selector and returns the renderer
// configuration of the selection.
func Select(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("palette: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("palette: select theme %s/%s: %w", name, variant, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("palette: select theme %s/%s: empty selection", name, variant)
	}
	rc := selection.RendererTheme(nil)
	return &rc, nil
}

// InlineStyle renders CSS variables as a deterministic style attribute value.
func InlineStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

// Color parses a hex colour token with an optional alpha token in [0,1].
func Color(hex, alpha string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("palette: parse colour %q: %w", hex, err)
	}
	a := 1.0
	if trimmed := strings.TrimSpace(alpha); trimmed != "" {
		a, err = strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("palette: parse alpha %q: %w", alpha, err)
		}
		a = clamp01(a)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, nil
}

// ApplyParticles overrides the colours of cfg with the particle tokens present
// in rc. Missing tokens keep the colours already in cfg.
func ApplyParticles(rc *theme.RendererConfig, cfg particles.Config) (particles.Config, error) {
	if rc == nil {
		return cfg, nil
	}
	targets := []struct {
		hex, alpha string
		dst        *color.NRGBA
	}{
		{TokenDot, TokenDotAlpha, &cfg.DotColor},
		{TokenLine, TokenLineAlpha, &cfg.LineColor},
		{TokenBackground, TokenBackgroundAlpha, &cfg.Background},
	}
	for _, target := range targets {
		hex, ok := rc.Tokens[target.hex]
		if !ok {
			continue
		}
		parsed, err := Color(hex, rc.Tokens[target.alpha])
		if err != nil {
			return cfg, err
		}
		*target.dst = parsed
	}
	return cfg, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
