// Package promoform wires the entry form and the particle background with
// their defaults. The subpackages remain usable on their own.
package promoform

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform/components/entryform"
	"github.com/goliatone/go-promoform/pkg/config"
	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/palette"
	"github.com/goliatone/go-promoform/pkg/particles"
	"github.com/goliatone/go-promoform/pkg/render"
)

// Entry is the submitted form state.
type Entry = entry.Entry

// FieldErrors maps fields to their validation message.
type FieldErrors = entry.FieldErrors

// RenderOptions describes per-request values, errors and theme passed to
// renderers.
type RenderOptions = render.RenderOptions

// FormOptions returns the default form wiring for cfg: logging on logger, a
// LogSubmitter and the configured confirmation message. Every host builds its
// forms from these.
func FormOptions(cfg config.Config, logger zerolog.Logger) []entry.Option {
	options := []entry.Option{
		entry.WithLogger(logger),
		entry.WithSubmitter(entry.NewLogSubmitter(logger)),
	}
	if cfg.Confirmation != "" {
		options = append(options, entry.WithConfirmation(cfg.Confirmation))
	}
	return options
}

// NewForm returns an entry form built from FormOptions. Options are applied
// after the defaults.
func NewForm(cfg config.Config, logger zerolog.Logger, options ...entry.Option) *entry.Form {
	return entry.NewForm(append(FormOptions(cfg, logger), options...)...)
}

// NewComponent builds the HTTP entry form component for cfg. Submissions are
// logged on logger.
func NewComponent(cfg config.Config, logger zerolog.Logger, fns ...entryform.OptionFn) (*entryform.Component, error) {
	if _, err := palette.Resolve(palette.DefaultManifest(), cfg.Theme.Variant); err != nil {
		return nil, fmt.Errorf("promoform: %w", err)
	}

	defaults := []entryform.OptionFn{
		entryform.WithLogger(logger),
		entryform.WithThemeVariant(cfg.Theme.Variant),
		entryform.WithFormOptions(FormOptions(cfg, logger)...),
	}
	return entryform.New(append(defaults, fns...)...), nil
}

// NewAnimator builds a particle animator from cfg, taking its colours from
// the selected palette variant.
func NewAnimator(cfg config.Config, logger zerolog.Logger, options ...particles.Option) (*particles.Animator, error) {
	rc, err := palette.Resolve(palette.DefaultManifest(), cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("promoform: %w", err)
	}
	pcfg, err := palette.ApplyParticles(rc, cfg.ParticleConfig())
	if err != nil {
		return nil, fmt.Errorf("promoform: %w", err)
	}
	defaults := []particles.Option{particles.WithLogger(logger)}
	return particles.New(pcfg, append(defaults, options...)...)
}
