package promoform

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform/pkg/config"
	"github.com/goliatone/go-promoform/pkg/palette"
	"github.com/goliatone/go-promoform/pkg/particles"
)

func TestAssetsAndTemplates(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), "promoform.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestNewForm_LogsAcceptedEntry(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Confirmation = "Thanks!"
	form := NewForm(cfg, zerolog.New(&buf))

	form.Fill(map[string]string{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"phoneNumber": "5551234567",
		"email":       "ada@example.com",
		"costGuess":   "299.99",
		"spidrPin":    "1234567890123456",
	})
	got, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Message != "Thanks!" {
		t.Fatalf("unexpected confirmation %q", got.Message)
	}
	if !strings.Contains(buf.String(), "entry submitted") {
		t.Fatalf("expected submission log line, got %q", buf.String())
	}
}

func TestNewComponent_ServesPage(t *testing.T) {
	component, err := NewComponent(config.Default(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	mux := http.NewServeMux()
	if _, err := component.RegisterRoutes(mux, "/"); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewComponent_SharesFormWiring(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Confirmation = "See you at the draw."
	logger := zerolog.New(&buf)

	if got := len(FormOptions(cfg, logger)); got != 3 {
		t.Fatalf("expected logger, submitter and confirmation options, got %d", got)
	}

	component, err := NewComponent(cfg, logger)
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	body := url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"phoneNumber": {"5551234567"},
		"email":       {"ada@example.com"},
		"costGuess":   {"299.99"},
		"spidrPin":    {"1234567890123456"},
	}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	component.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), cfg.Confirmation) {
		t.Fatalf("expected configured confirmation, got %q", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "entry submitted") {
		t.Fatalf("expected submission logged on the component logger")
	}
}

func TestNewComponent_UnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Variant = "neon"
	if _, err := NewComponent(cfg, zerolog.Nop()); !errors.Is(err, palette.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestNewAnimator_UsesPaletteAndConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 12
	cfg.Theme.Variant = "light"

	animator, err := NewAnimator(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new animator: %v", err)
	}
	pcfg := animator.Config()
	if pcfg.Count != 12 {
		t.Fatalf("expected count 12, got %d", pcfg.Count)
	}
	if pcfg.LineColor == particles.DefaultConfig().LineColor {
		t.Fatalf("expected light variant line colour, got %v", pcfg.LineColor)
	}

	if err := animator.Mount(100, 100); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(animator.Particles()) != 12 {
		t.Fatalf("expected 12 particles")
	}
}
