package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. Render prompts
// for every field of the page, submits the entry and returns the accepted
// entry serialized in the configured format.
type Renderer struct {
	driver        PromptDriver
	out           io.Writer
	outputFormat  OutputFormat
	formOptions   []entry.Option
	maxAttempts   int
	confirmSubmit bool
	theme         Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the prompt flow. Values in opts prefill the prompts and Errors
// are shown before the first prompt of the matching field. Fields rejected on
// submit are prompted again, in display order, until the entry is accepted or
// the attempt budget runs out.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	form := entry.NewForm(r.formOptions...)
	form.Fill(opts.Values.Map())

	fields := pageFields(page)
	if page.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+page.Title); err != nil {
			return nil, err
		}
	}
	for _, field := range fields {
		if err := r.promptField(ctx, form, field, opts.Errors.Get(field)); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		if r.confirmSubmit {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.theme.PromptPrefix + submitMessage(page), Default: true})
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrAborted
			}
		}

		confirmation, err := form.Submit(ctx)
		if err == nil {
			if err := r.driver.Info(ctx, r.theme.InfoPrefix+confirmation.Message); err != nil {
				return nil, err
			}
			return r.serialize(confirmation.Entry)
		}

		verr, ok := entry.AsValidationError(err)
		if !ok {
			return nil, err
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %w", ErrTooManyAttempts, verr)
		}
		for _, field := range fields {
			if msg := verr.Fields.Get(field); msg != "" {
				if err := r.promptField(ctx, form, field, msg); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, form *entry.Form, field entry.Field, errMsg string) error {
	if errMsg != "" {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+errMsg); err != nil {
			return err
		}
	}

	raw, err := r.driver.Input(ctx, InputConfig{
		Message: r.theme.PromptPrefix + field.Label(),
		Default: form.Value(field),
		Help:    "e.g. " + field.Placeholder(),
	})
	if err != nil {
		return err
	}

	masked, err := form.Input(field, raw)
	if err != nil {
		return err
	}
	if masked != raw && masked != "" {
		return r.driver.Info(ctx, r.theme.InfoPrefix+"Formatted as "+masked)
	}
	return nil
}

func (r *Renderer) serialize(e entry.Entry) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range entry.Fields() {
			values.Set(field.String(), e.Get(field))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range entry.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", field.Label(), e.Get(field))
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("tui: encode entry: %w", err)
		}
		return out, nil
	}
}

// pageFields lists the page's known fields in row order. A page without rows
// prompts every field.
func pageFields(page render.Page) []entry.Field {
	var out []entry.Field
	for _, row := range page.Rows {
		for _, view := range row.Fields {
			if field, ok := entry.ParseField(view.Name); ok {
				out = append(out, field)
			}
		}
	}
	if len(out) == 0 {
		return entry.Fields()
	}
	return out
}

func submitMessage(page render.Page) string {
	if label := strings.TrimSpace(page.SubmitLabel); label != "" {
		return label + " your entry?"
	}
	return "Submit your entry?"
}
