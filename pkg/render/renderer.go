package render

import (
	"context"

	"github.com/goliatone/go-promoform/pkg/entry"
)

// Renderer converts an entry page into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}

// Page describes the entry form independent of any output format.
type Page struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Action      string `json:"action"`
	Method      string `json:"method"`
	MaskURL     string `json:"maskUrl,omitempty"`
	SubmitLabel string `json:"submitLabel"`
	Rows        []Row  `json:"rows"`
}

// Row groups the fields rendered side by side.
type Row struct {
	Fields []FieldView `json:"fields"`
}

// FieldView carries everything a renderer needs to draw one input.
type FieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
	InputMode   string `json:"inputMode,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Required    bool   `json:"required"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
}

// DefaultPage returns the entry page layout: two fields per row in display
// order.
func DefaultPage(action string) Page {
	fields := entry.Fields()
	page := Page{
		Title:       "Get Your Spidr Air Fryer",
		Subtitle:    "Join the revolution in air frying technology",
		Action:      action,
		Method:      "POST",
		SubmitLabel: "Submit",
	}
	for i := 0; i < len(fields); i += 2 {
		row := Row{}
		for _, field := range fields[i:min(i+2, len(fields))] {
			row.Fields = append(row.Fields, fieldView(field))
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}

func fieldView(field entry.Field) FieldView {
	view := FieldView{
		Name:        field.String(),
		Label:       field.Label(),
		Type:        "text",
		Placeholder: field.Placeholder(),
		Required:    true,
	}
	switch field {
	case entry.FieldPhoneNumber:
		view.Type = "tel"
		view.InputMode = "numeric"
		view.MaxLength = entry.PhoneDigits
	case entry.FieldEmail:
		view.Type = "email"
	case entry.FieldCostGuess:
		view.InputMode = "decimal"
	case entry.FieldSpidrPin:
		view.InputMode = "numeric"
		view.MaxLength = entry.PinDigits + entry.PinDigits/entry.PinGroup - 1
	}
	return view
}

// Apply returns a copy of p with values and errors from options bound to each
// field.
func (p Page) Apply(options RenderOptions) Page {
	out := p
	out.Rows = make([]Row, len(p.Rows))
	for i, row := range p.Rows {
		fields := make([]FieldView, len(row.Fields))
		for j, view := range row.Fields {
			if field, ok := entry.ParseField(view.Name); ok {
				view.Value = options.Values.Get(field)
				view.Error = options.Errors.Get(field)
			}
			fields[j] = view
		}
		out.Rows[i] = Row{Fields: fields}
	}
	return out
}
