package entry

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips markup from the free-text fields and trims surrounding
// whitespace from every field. The result is plain text. Masked fields cannot
// carry markup.
func Sanitize(e Entry) Entry {
	policy := textSanitizer()
	out := Entry{
		FirstName:   sanitizeText(policy, e.FirstName),
		LastName:    sanitizeText(policy, e.LastName),
		PhoneNumber: strings.TrimSpace(e.PhoneNumber),
		Email:       sanitizeText(policy, e.Email),
		CostGuess:   strings.TrimSpace(e.CostGuess),
		SpidrPin:    strings.TrimSpace(e.SpidrPin),
	}
	return out
}

func sanitizeText(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// The policy escapes entities; callers escape on output themselves.
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(trimmed)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
