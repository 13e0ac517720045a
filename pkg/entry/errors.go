package entry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when input targets a field the form lacks.
	ErrUnknownField = errors.New("entry: unknown field")
	// ErrNoSubmitter is returned by Submit when no submitter is configured.
	ErrNoSubmitter = errors.New("entry: submitter is nil")
)

// FieldErrors maps fields to a human-readable message. Empty messages are
// treated as absent.
type FieldErrors map[Field]string

// Get returns the message for field.
func (e FieldErrors) Get(field Field) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Has reports whether field carries a non-empty message.
func (e FieldErrors) Has(field Field) bool {
	return strings.TrimSpace(e.Get(field)) != ""
}

// Len counts fields with a non-empty message.
func (e FieldErrors) Len() int {
	n := 0
	for _, msg := range e {
		if strings.TrimSpace(msg) != "" {
			n++
		}
	}
	return n
}

// Empty reports whether no field carries a message.
func (e FieldErrors) Empty() bool {
	return e.Len() == 0
}

// Clone drops empty messages and returns a copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for field, msg := range e {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		out[field] = msg
	}
	return out
}

// Map returns the messages keyed by input name.
func (e FieldErrors) Map() map[string]string {
	if e.Empty() {
		return nil
	}
	out := make(map[string]string, len(e))
	for field, msg := range e {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		out[string(field)] = msg
	}
	return out
}

// ValidationError is returned by Submit when one or more rules fail.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if e == nil || e.Fields.Empty() {
		return "entry: validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range orderedFields {
		if msg := e.Fields.Get(field); strings.TrimSpace(msg) != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return "entry: validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError extracts a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
