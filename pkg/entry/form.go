package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultConfirmation is the success notice returned by Submit.
const DefaultConfirmation = "Thank you for your interest! Your entry has been received."

// Confirmation is returned by a successful Submit.
type Confirmation struct {
	Message string `json:"message"`
	Entry   Entry  `json:"-"`
}

// Option configures a Form.
type Option func(*Form)

// WithMasks replaces the mask table.
func WithMasks(masks MaskTable) Option {
	return func(f *Form) {
		if masks != nil {
			f.masks = masks.Clone()
		}
	}
}

// WithRules replaces the submit-time rules.
func WithRules(rules []Rule) Option {
	return func(f *Form) {
		if rules != nil {
			f.rules = append([]Rule(nil), rules...)
		}
	}
}

// WithSubmitter sets the collaborator that receives validated entries.
func WithSubmitter(submitter Submitter) Option {
	return func(f *Form) {
		f.submitter = submitter
		f.customSubmitter = true
	}
}

// WithLogger sets the logger used for form events. The default submitter
// logs through it as well.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithConfirmation overrides the success message.
func WithConfirmation(message string) Option {
	return func(f *Form) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			f.confirmation = trimmed
		}
	}
}

// Form is a single entry session: the current values and field errors.
// A Form is not safe for concurrent use.
type Form struct {
	masks        MaskTable
	rules        []Rule
	submitter    Submitter
	logger       zerolog.Logger
	confirmation string

	customSubmitter bool

	values Entry
	errors FieldErrors
}

// NewForm returns an empty form with the default masks, rules and a
// LogSubmitter bound to the configured logger.
func NewForm(options ...Option) *Form {
	f := &Form{
		masks:        DefaultMasks(),
		rules:        DefaultRules(),
		logger:       zerolog.Nop(),
		confirmation: DefaultConfirmation,
		errors:       FieldErrors{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if !f.customSubmitter {
		f.submitter = NewLogSubmitter(f.logger)
	}
	return f
}

// Input masks raw, stores it under field and clears any error on that field.
// It returns the stored value.
func (f *Form) Input(field Field, raw string) (string, error) {
	if _, ok := ParseField(string(field)); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	masked := f.masks.Apply(field, f.values.Get(field), raw)
	f.values.Set(field, masked)
	if f.errors.Has(field) {
		delete(f.errors, field)
	}
	return masked, nil
}

// Fill applies Input for every known key in values, in display order.
// Unknown keys are ignored.
func (f *Form) Fill(values map[string]string) {
	for _, field := range orderedFields {
		raw, ok := values[string(field)]
		if !ok {
			continue
		}
		_, _ = f.Input(field, raw)
	}
}

// Values returns the stored entry.
func (f *Form) Values() Entry {
	return f.values
}

// Value returns the stored value for field.
func (f *Form) Value(field Field) string {
	return f.values.Get(field)
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	return f.errors.Clone()
}

// Error returns the current message for field.
func (f *Form) Error(field Field) string {
	return f.errors.Get(field)
}

// Masks returns a copy of the mask table used by Input.
func (f *Form) Masks() MaskTable {
	return f.masks.Clone()
}

// Validate recomputes every field error against the sanitised values and
// stores the result.
func (f *Form) Validate() FieldErrors {
	_, errs := f.validate()
	return errs
}

func (f *Form) validate() (Entry, FieldErrors) {
	clean := Sanitize(f.values)
	f.errors = ValidateWith(clean, f.rules)
	return clean, f.errors.Clone()
}

// Submit sanitises and validates the form. When any rule fails it returns a
// *ValidationError and nothing is handed off. Otherwise the validated entry is
// passed to the submitter and a Confirmation is returned.
func (f *Form) Submit(ctx context.Context) (Confirmation, error) {
	if ctx == nil {
		return Confirmation{}, errors.New("entry: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}

	clean, errs := f.validate()
	if !errs.Empty() {
		f.logger.Debug().Int("errors", errs.Len()).Msg("entry rejected")
		return Confirmation{}, &ValidationError{Fields: errs}
	}

	if f.submitter == nil {
		return Confirmation{}, ErrNoSubmitter
	}

	if err := f.submitter.Submit(ctx, clean); err != nil {
		f.logger.Error().Err(err).Msg("entry hand-off failed")
		return Confirmation{}, fmt.Errorf("entry: submit: %w", err)
	}

	return Confirmation{Message: f.confirmation, Entry: clean}, nil
}

// Reset clears every value and error.
func (f *Form) Reset() {
	f.values = Entry{}
	f.errors = FieldErrors{}
}
