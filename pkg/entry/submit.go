package entry

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Submitter receives validated entries. It is the output collaborator the
// embedding application provides (a log, a queue, a backend call).
type Submitter interface {
	Submit(ctx context.Context, e Entry) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, e Entry) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, e Entry) error {
	return fn(ctx, e)
}

// LogSubmitter writes each entry to a structured logger. The PIN is redacted
// to its last group.
type LogSubmitter struct {
	Logger zerolog.Logger
}

// NewLogSubmitter returns a LogSubmitter writing to logger.
func NewLogSubmitter(logger zerolog.Logger) LogSubmitter {
	return LogSubmitter{Logger: logger}
}

// Submit logs e at info level.
func (s LogSubmitter) Submit(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Logger.Info().
		Str("firstName", e.FirstName).
		Str("lastName", e.LastName).
		Str("phoneNumber", e.PhoneNumber).
		Str("email", e.Email).
		Str("costGuess", e.CostGuess).
		Str("spidrPin", RedactPin(e.SpidrPin)).
		Msg("entry submitted")
	return nil
}

// RedactPin hides every PIN group except the last one.
func RedactPin(pin string) string {
	groups := strings.Split(pin, "-")
	if len(groups) < 2 {
		return strings.Repeat("*", len(pin))
	}
	for i := 0; i < len(groups)-1; i++ {
		groups[i] = strings.Repeat("*", len(groups[i]))
	}
	return strings.Join(groups, "-")
}
