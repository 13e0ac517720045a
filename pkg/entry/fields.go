package entry

import "strings"

// Field identifies one entry input. Values match the HTML input names.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldPhoneNumber Field = "phoneNumber"
	FieldEmail       Field = "email"
	FieldCostGuess   Field = "costGuess"
	FieldSpidrPin    Field = "spidrPin"
)

var orderedFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldPhoneNumber,
	FieldEmail,
	FieldCostGuess,
	FieldSpidrPin,
}

// Fields returns every field in display order.
func Fields() []Field {
	return append([]Field(nil), orderedFields...)
}

// ParseField resolves a raw input name into a Field.
func ParseField(name string) (Field, bool) {
	trimmed := strings.TrimSpace(name)
	for _, field := range orderedFields {
		if string(field) == trimmed {
			return field, true
		}
	}
	return "", false
}

func (f Field) String() string {
	return string(f)
}

// Label returns the human label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldPhoneNumber:
		return "Phone Number"
	case FieldEmail:
		return "Email Address"
	case FieldCostGuess:
		return "Guess the Air Fryer's $"
	case FieldSpidrPin:
		return "Spidr PIN"
	default:
		return string(f)
	}
}

// Placeholder returns the input placeholder copy.
func (f Field) Placeholder() string {
	switch f {
	case FieldFirstName:
		return "first name"
	case FieldLastName:
		return "last name"
	case FieldPhoneNumber:
		return "phone number"
	case FieldEmail:
		return "email address"
	case FieldCostGuess:
		return "$299.99"
	case FieldSpidrPin:
		return "1234-5678-9012-3456"
	default:
		return ""
	}
}

// Entry holds the raw (masked) text of every field. It is the form state.
type Entry struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	CostGuess   string `json:"costGuess"`
	SpidrPin    string `json:"spidrPin"`
}

// Get returns the value stored for field. Unknown fields yield "".
func (e Entry) Get(field Field) string {
	switch field {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldPhoneNumber:
		return e.PhoneNumber
	case FieldEmail:
		return e.Email
	case FieldCostGuess:
		return e.CostGuess
	case FieldSpidrPin:
		return e.SpidrPin
	default:
		return ""
	}
}

// Set stores value under field and reports whether the field is known.
func (e *Entry) Set(field Field, value string) bool {
	if e == nil {
		return false
	}
	switch field {
	case FieldFirstName:
		e.FirstName = value
	case FieldLastName:
		e.LastName = value
	case FieldPhoneNumber:
		e.PhoneNumber = value
	case FieldEmail:
		e.Email = value
	case FieldCostGuess:
		e.CostGuess = value
	case FieldSpidrPin:
		e.SpidrPin = value
	default:
		return false
	}
	return true
}

// Map returns the entry keyed by input name.
func (e Entry) Map() map[string]string {
	out := make(map[string]string, len(orderedFields))
	for _, field := range orderedFields {
		out[string(field)] = e.Get(field)
	}
	return out
}

// EntryFromMap builds an entry from input-name keyed values. Unknown keys are
// ignored. Values are stored as given; callers mask them through a Form.
func EntryFromMap(values map[string]string) Entry {
	var e Entry
	for name, value := range values {
		if field, ok := ParseField(name); ok {
			e.Set(field, value)
		}
	}
	return e
}
