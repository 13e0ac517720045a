package entry

import "strings"

const (
	// PhoneDigits caps the phone mask and bounds the phone validation pattern.
	PhoneDigits = 10
	// CostDecimals is the number of fractional digits kept by the cost mask.
	CostDecimals = 2
	// PinDigits is the number of digits in a complete Spidr PIN.
	PinDigits = 16
	// PinGroup is the number of digits between PIN hyphens.
	PinGroup = 4
)

// Mask transforms raw input into the value stored for a field. prev holds the
// value stored before the edit.
type Mask func(prev, raw string) string

// MaskTable maps fields to their input masks.
type MaskTable map[Field]Mask

// DefaultMasks returns the masks for the phone, cost guess and PIN fields.
// Name and email fields store raw input.
func DefaultMasks() MaskTable {
	return MaskTable{
		FieldPhoneNumber: MaskPhone,
		FieldCostGuess:   MaskCostGuess,
		FieldSpidrPin:    MaskSpidrPin,
	}
}

// Apply runs the mask registered for field, or returns raw unchanged.
func (t MaskTable) Apply(field Field, prev, raw string) string {
	if mask, ok := t[field]; ok && mask != nil {
		return mask(prev, raw)
	}
	return raw
}

// Clone returns a copy of the table that can be extended independently.
func (t MaskTable) Clone() MaskTable {
	out := make(MaskTable, len(t))
	for field, mask := range t {
		out[field] = mask
	}
	return out
}

// MaskPhone keeps digits only, truncated to PhoneDigits.
func MaskPhone(_, raw string) string {
	digits := onlyDigits(raw)
	if len(digits) > PhoneDigits {
		digits = digits[:PhoneDigits]
	}
	return digits
}

// MaskCostGuess keeps digits and decimal points, folds every point after the
// first into the fraction and truncates the fraction to CostDecimals digits.
func MaskCostGuess(_, raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if isDigit(r) || r == '.' {
			return r
		}
		return -1
	}, raw)

	whole, frac, found := strings.Cut(cleaned, ".")
	if !found {
		return cleaned
	}
	frac = strings.ReplaceAll(frac, ".", "")
	if len(frac) > CostDecimals {
		frac = frac[:CostDecimals]
	}
	return whole + "." + frac
}

// MaskSpidrPin adapts FormatSpidrPin to the Mask signature.
func MaskSpidrPin(_, raw string) string {
	return FormatSpidrPin(raw)
}

// FormatSpidrPin strips non-digits and re-inserts a hyphen every PinGroup
// digits, dropping anything past PinDigits.
func FormatSpidrPin(value string) string {
	digits := onlyDigits(value)
	if len(digits) > PinDigits {
		digits = digits[:PinDigits]
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/PinGroup)
	for i := 0; i < len(digits); i += PinGroup {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + PinGroup
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

func onlyDigits(raw string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, raw)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
