package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/render"
)

func TestDefaultPage_Layout(t *testing.T) {
	page := render.DefaultPage("/enter")

	var names [][]string
	for _, row := range page.Rows {
		var rowNames []string
		for _, f := range row.Fields {
			rowNames = append(rowNames, f.Name)
		}
		names = append(names, rowNames)
	}
	want := [][]string{
		{"firstName", "lastName"},
		{"phoneNumber", "email"},
		{"costGuess", "spidrPin"},
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if page.Action != "/enter" || page.Method != "POST" {
		t.Fatalf("unexpected action/method %s %s", page.Method, page.Action)
	}
	if pin := page.Rows[2].Fields[1]; pin.MaxLength != 19 {
		t.Fatalf("expected PIN max length 19, got %d", pin.MaxLength)
	}
}

func TestPage_ApplyBindsValuesAndErrors(t *testing.T) {
	page := render.DefaultPage("/").Apply(render.RenderOptions{
		Values: entry.Entry{Email: "bad"},
		Errors: entry.FieldErrors{entry.FieldEmail: entry.MsgEmailInvalid},
	})

	email := page.Rows[1].Fields[1]
	if email.Value != "bad" || email.Error != entry.MsgEmailInvalid {
		t.Fatalf("email not bound: %+v", email)
	}
	first := page.Rows[0].Fields[0]
	if first.Value != "" || first.Error != "" {
		t.Fatalf("unexpected first name binding: %+v", first)
	}
}
