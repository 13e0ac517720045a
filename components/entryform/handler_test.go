package entryform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promoform/pkg/entry"
)

type recordingSubmitter struct {
	entries []entry.Entry
	err     error
}

func (r *recordingSubmitter) Submit(_ context.Context, e entry.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func validForm() url.Values {
	return url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"phoneNumber": {"555-123-4567"},
		"email":       {"ada@example.com"},
		"costGuess":   {"$299.99"},
		"spidrPin":    {"1234567890123456"},
	}
}

func postForm(h http.Handler, values url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetRendersForm(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML content-type, got %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`action="/"`,
		`data-mask-url="/mask"`,
		`href="/assets/promoform.css"`,
		`src="/assets/promoform.js"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestHandler_HeadOmitsBody(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestHandler_EmptySubmitReturnsAllErrors(t *testing.T) {
	sub := &recordingSubmitter{}
	h := NewHandler(WithFormOptions(entry.WithSubmitter(sub)))

	rec := postForm(h, url.Values{}, "application/json")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var payload submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{
		"firstName":   entry.MsgFirstNameRequired,
		"lastName":    entry.MsgLastNameRequired,
		"phoneNumber": entry.MsgPhoneRequired,
		"email":       entry.MsgEmailRequired,
		"costGuess":   entry.MsgCostRequired,
		"spidrPin":    entry.MsgPinRequired,
	}
	if diff := cmp.Diff(want, payload.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(sub.entries) != 0 {
		t.Fatalf("expected no hand-off on invalid entry")
	}
}

func TestHandler_InvalidSubmitRerendersWithErrors(t *testing.T) {
	values := validForm()
	values.Set("email", "not-an-email")

	h := NewHandler(WithFormOptions(entry.WithSubmitter(&recordingSubmitter{})))
	rec := postForm(h, values, "")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, entry.MsgEmailInvalid) {
		t.Fatalf("expected inline email error")
	}
	if !strings.Contains(body, `value="5551234567"`) {
		t.Fatalf("expected masked phone to be echoed back")
	}
	if !strings.Contains(body, `value="1234-5678-9012-3456"`) {
		t.Fatalf("expected formatted PIN to be echoed back")
	}
}

func TestHandler_ValidSubmitHandsOff(t *testing.T) {
	sub := &recordingSubmitter{}
	h := NewHandler(WithFormOptions(entry.WithSubmitter(sub)))

	rec := postForm(h, validForm(), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Message != entry.DefaultConfirmation {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	if len(sub.entries) != 1 {
		t.Fatalf("expected one hand-off, got %d", len(sub.entries))
	}
	if got := sub.entries[0]; got.PhoneNumber != "5551234567" || got.SpidrPin != "1234-5678-9012-3456" {
		t.Fatalf("unexpected submitted entry %+v", got)
	}
}

func TestHandler_ValidSubmitRendersConfirmation(t *testing.T) {
	h := NewHandler(WithFormOptions(entry.WithSubmitter(&recordingSubmitter{})))

	rec := postForm(h, validForm(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "promoform-confirmation") {
		t.Fatalf("expected confirmation block")
	}
}

func TestHandler_JSONBody(t *testing.T) {
	sub := &recordingSubmitter{}
	h := NewHandler(WithFormOptions(entry.WithSubmitter(sub)))

	payload := map[string]string{}
	for key, vals := range validForm() {
		payload[key] = vals[0]
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || len(sub.entries) != 1 {
		t.Fatalf("expected accepted JSON submission, got %d", rec.Code)
	}
}

func TestHandler_SubmitterFailure(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("downstream unavailable")}
	h := NewHandler(WithFormOptions(entry.WithSubmitter(sub)))

	rec := postForm(h, validForm(), "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), MsgSubmitFailed) {
		t.Fatalf("expected form-level error message")
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardStatus(t *testing.T) {
	h := NewHandler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusTooManyRequests}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestMaskHandler(t *testing.T) {
	h := MaskHandler()

	cases := []struct {
		name string
		req  maskRequest
		want maskResponse
	}{
		{"phone", maskRequest{Field: "phoneNumber", Value: "(555) 123-45678"}, maskResponse{Field: "phoneNumber", Value: "5551234567"}},
		{"cost", maskRequest{Field: "costGuess", Value: "$12.345"}, maskResponse{Field: "costGuess", Value: "12.34"}},
		{"pin", maskRequest{Field: "spidrPin", Value: "12345", Previous: "1234"}, maskResponse{Field: "spidrPin", Value: "1234-5"}},
		{"unmasked", maskRequest{Field: "firstName", Value: " Ada "}, maskResponse{Field: "firstName", Value: " Ada "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.req)
			req := httptest.NewRequest(http.MethodPost, "/mask", strings.NewReader(string(body)))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var got maskResponse
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mask mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMaskHandler_UsesFormMasks(t *testing.T) {
	masks := entry.DefaultMasks()
	masks[entry.FieldFirstName] = func(_, raw string) string { return strings.ToUpper(raw) }
	sub := &recordingSubmitter{}
	opts := WithFormOptions(entry.WithMasks(masks), entry.WithSubmitter(sub))

	body, _ := json.Marshal(maskRequest{Field: "firstName", Value: "ada"})
	rec := httptest.NewRecorder()
	MaskHandler(opts).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mask", strings.NewReader(string(body))))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got maskResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	values := validForm()
	values.Set("firstName", "ada")
	if rec := postForm(NewHandler(opts), values, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(sub.entries) != 1 {
		t.Fatalf("expected one hand-off, got %d", len(sub.entries))
	}
	if got.Value != "ADA" || sub.entries[0].FirstName != got.Value {
		t.Fatalf("keystroke mask %q and submitted value %q differ", got.Value, sub.entries[0].FirstName)
	}
}

func TestMaskHandler_Rejects(t *testing.T) {
	h := MaskHandler()

	req := httptest.NewRequest(http.MethodPost, "/mask", strings.NewReader(`{"field":"nickname","value":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/mask", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestHandler_ThemeVariant(t *testing.T) {
	h := NewHandler(WithThemeVariant("light"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), `data-variant="light"`) {
		t.Fatalf("expected light variant on the page")
	}

	h = NewHandler(WithThemeVariant("neon"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown variant, got %d", rec.Code)
	}
}
