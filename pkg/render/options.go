package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promoform/pkg/entry"
)

// RenderOptions describe per-request data renderers use to fill the page.
type RenderOptions struct {
	// Values pre-populates the inputs with the current (masked) entry.
	Values entry.Entry
	// Errors surfaces field-level validation messages inline.
	Errors entry.FieldErrors
	// FormErrors are messages not tied to a single field, such as a failed
	// hand-off.
	FormErrors []string
	// Confirmation replaces the form with a success notice when set.
	Confirmation string
	// Theme carries resolved tokens, CSS variables and asset URLs.
	Theme *theme.RendererConfig
}
