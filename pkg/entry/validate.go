package entry

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	phonePattern    = regexp.MustCompile(fmt.Sprintf(`^\+?[1-9]\d{0,%d}$`, PhoneDigits-1))
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	costPattern     = regexp.MustCompile(`^\$?\d+(\.\d{2})?$`)
	pinPattern      = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{4}$`)
)

// Messages shown for failed rules.
const (
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgPhoneRequired     = "Phone number is required"
	MsgPhoneInvalid      = "Please enter a valid phone number"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgCostRequired      = "Cost guess is required"
	MsgCostInvalid       = "Please enter a valid dollar amount"
	MsgPinRequired       = "Spidr PIN is required"
	MsgPinInvalid        = "Please enter PIN in format: ####-####-####-####"
)

// Check returns an error message for value, or "" when it passes.
type Check func(value string) string

// Rule binds a check to a field.
type Rule struct {
	Field Field
	Check Check
}

// DefaultRules returns the submit-time rules in display order.
func DefaultRules() []Rule {
	return []Rule{
		{Field: FieldFirstName, Check: Required(MsgFirstNameRequired)},
		{Field: FieldLastName, Check: Required(MsgLastNameRequired)},
		{Field: FieldPhoneNumber, Check: All(Required(MsgPhoneRequired), validPhone)},
		{Field: FieldEmail, Check: All(Required(MsgEmailRequired), Matches(emailPattern, MsgEmailInvalid))},
		{Field: FieldCostGuess, Check: All(Required(MsgCostRequired), Matches(costPattern, MsgCostInvalid))},
		{Field: FieldSpidrPin, Check: All(Required(MsgPinRequired), Matches(pinPattern, MsgPinInvalid))},
	}
}

// Validate runs the default rules against e.
func Validate(e Entry) FieldErrors {
	return ValidateWith(e, DefaultRules())
}

// ValidateWith runs rules against e. The first failing rule per field wins.
func ValidateWith(e Entry, rules []Rule) FieldErrors {
	errs := FieldErrors{}
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if _, seen := errs[rule.Field]; seen {
			continue
		}
		if msg := rule.Check(e.Get(rule.Field)); msg != "" {
			errs[rule.Field] = msg
		}
	}
	return errs
}

// Required fails with msg when value is blank after trimming.
func Required(msg string) Check {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// Matches fails with msg when value does not match pattern.
func Matches(pattern *regexp.Regexp, msg string) Check {
	return func(value string) string {
		if !pattern.MatchString(value) {
			return msg
		}
		return ""
	}
}

// All returns the first failing message of checks.
func All(checks ...Check) Check {
	return func(value string) string {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if msg := check(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func validPhone(value string) string {
	if !phonePattern.MatchString(phoneSeparators.ReplaceAllString(value, "")) {
		return MsgPhoneInvalid
	}
	return ""
}
