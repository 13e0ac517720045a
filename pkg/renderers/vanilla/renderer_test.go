package vanilla_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/render"
	"github.com/goliatone/go-promoform/pkg/renderers/vanilla"
	"github.com/goliatone/go-promoform/pkg/testsupport"
)

func TestRenderer_RenderContract(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), render.DefaultPage("/enter"), render.RenderOptions{
		Theme: testThemeConfig(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	for _, want := range []string{
		"<title>Get Your Spidr Air Fryer</title>",
		`<form method="POST" action="/enter" novalidate>`,
		`<link rel="stylesheet" href="/themes/acme/stylesheet">`,
		`data-theme="acme" data-variant="dark"`,
		`style="--brand: #123456;"`,
		`<label for="pf-firstName">First Name</label>`,
		`name="phoneNumber" type="tel"`,
		`inputmode="numeric" maxlength="10"`,
		`name="spidrPin"`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, "promoform-error") {
		t.Errorf("did not expect inline errors on a fresh page")
	}
	if strings.Contains(html, "<canvas") {
		t.Errorf("expected no canvas element on the page")
	}
}

func TestRenderer_RenderErrorsAndValues(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), render.DefaultPage("/"), render.RenderOptions{
		Values: entry.Entry{FirstName: "<b>Ada</b>", Email: "ada@"},
		Errors: entry.FieldErrors{
			entry.FieldEmail: entry.MsgEmailInvalid,
		},
		FormErrors: []string{" hand-off failed ", "hand-off failed"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	for _, want := range []string{
		`value="&lt;b&gt;Ada&lt;/b&gt;"`,
		`aria-describedby="pf-email-error"`,
		`<p class="promoform-error" id="pf-email-error">Please enter a valid email address</p>`,
		`<li>hand-off failed</li>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Count(html, "<li>") != 1 {
		t.Errorf("expected form errors to be de-duplicated")
	}
	if strings.Contains(html, "<b>Ada</b>") {
		t.Errorf("expected values to be escaped")
	}
}

func TestRenderer_RenderConfirmation(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/assets/custom.css"), vanilla.WithScript("/assets/promoform.js"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), render.DefaultPage("/"), render.RenderOptions{
		Confirmation: entry.DefaultConfirmation,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	if !strings.Contains(html, `<div class="promoform-confirmation" role="status">`) {
		t.Fatalf("expected confirmation block")
	}
	if strings.Contains(html, "<form") {
		t.Fatalf("expected the form to be replaced by the confirmation")
	}
	if !strings.Contains(html, `<link rel="stylesheet" href="/assets/custom.css">`) {
		t.Fatalf("expected custom stylesheet link")
	}
	if !strings.Contains(html, "<style>") || !strings.Contains(html, ".promoform-card") {
		t.Fatalf("expected embedded stylesheet to be inlined")
	}
	if !strings.Contains(html, `<script src="/assets/promoform.js" defer></script>`) {
		t.Fatalf("expected script tag")
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"form.tpl":  {Data: []byte(`{{ page.title }}|{% if confirmation %}done{% else %}open{% endif %}`)},
		"field.tpl": {Data: []byte(``)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(context.Background(), render.Page{Title: "Custom"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(output); got != "Custom|open" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := renderer.Render(ctx, render.DefaultPage("/"), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.ScriptName} {
		data, err := fs.ReadFile(vanilla.AssetsFS(), name)
		if err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s to be non-empty", name)
		}
	}
	if _, err := fs.ReadFile(vanilla.TemplatesFS(), "form.tpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func testThemeConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		CSSVars: map[string]string{
			"--brand": "#123456",
		},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}
}

func TestRenderer_RenderPrefilledEntry(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	values := testsupport.MustLoadEntry(t, "testdata/entry.json")

	output, err := renderer.Render(testsupport.Context(), render.DefaultPage("/"), render.RenderOptions{Values: values})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	for _, field := range entry.Fields() {
		want := `value="` + values.Get(field) + `"`
		if !strings.Contains(html, want) {
			t.Errorf("expected %s to render %q", field, want)
		}
	}
}
