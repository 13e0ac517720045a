package entryform

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-promoform/pkg/entry"
)

type maskRequest struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Previous string `json:"previous"`
}

type maskResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// maskHandler applies the masks configured through FormOptions to a single
// field edit, so keystrokes and submissions mask alike. Fields without a mask
// echo the value unchanged.
func maskHandler(opts Options) http.Handler {
	masks := entry.NewForm(opts.FormOptions...).Masks()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
		var req maskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid mask request"})
			return
		}
		field, ok := entry.ParseField(req.Field)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: entry.ErrUnknownField.Error()})
			return
		}

		writeJSON(w, http.StatusOK, maskResponse{
			Field: field.String(),
			Value: masks.Apply(field, req.Previous, req.Value),
		})
	})
}
