package particles

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Config holds the animation tunables.
type Config struct {
	// Count is the number of particles seeded on Mount.
	Count int
	// LinkDistance is the distance below which two particles are linked.
	LinkDistance float64
	// DotRadius is the radius of each particle disk.
	DotRadius float64
	// GlowRadius is the blur radius of the halo around each disk.
	GlowRadius float64
	// MaxSpeed bounds the seeded velocity: each component is drawn from
	// (rand-0.5)*MaxSpeed.
	MaxSpeed float64
	// LineWidth is the width of a link of length zero. Links thin by one unit
	// across LinkDistance.
	LineWidth float64

	DotColor   color.NRGBA
	LineColor  color.NRGBA
	Background color.NRGBA
}

// DefaultConfig returns the stock network background settings.
func DefaultConfig() Config {
	return Config{
		Count:        80,
		LinkDistance: 120,
		DotRadius:    2.5,
		GlowRadius:   6,
		MaxSpeed:     0.4,
		LineWidth:    1.1,
		DotColor:     color.NRGBA{R: 62, G: 198, B: 224, A: 179},
		LineColor:    color.NRGBA{R: 255, G: 255, B: 255, A: 33},
		Background:   color.NRGBA{},
	}
}

// Validate reports configuration values the animator cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must be >= 0, got %d", c.Count))
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"link distance", c.LinkDistance},
		{"dot radius", c.DotRadius},
		{"glow radius", c.GlowRadius},
		{"max speed", c.MaxSpeed},
		{"line width", c.LineWidth},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be a finite value >= 0, got %g", v.name, v.value))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("particles: invalid config: %w", errors.Join(errs...))
}
