package entryform

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/palette"
	"github.com/goliatone/go-promoform/pkg/render"
	"github.com/goliatone/go-promoform/pkg/renderers/vanilla"
)

// MsgSubmitFailed is shown when a valid entry could not be handed off.
const MsgSubmitFailed = "We could not record your entry. Please try again."

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type submitResponse struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// server holds what the page and mask handlers share once paths are known.
type server struct {
	opts     Options
	renderer render.Renderer
	page     render.Page
	theme    *theme.RendererConfig
	err      error
}

func newServer(opts Options, pagePath, maskPath, assetsPath string) *server {
	s := &server{opts: opts, renderer: opts.Renderer, theme: opts.Theme}

	if s.renderer == nil {
		r, err := vanilla.New(vanilla.WithScript(assetsPath + "/" + vanilla.ScriptName))
		if err != nil {
			s.err = err
		}
		s.renderer = r
	}
	if s.theme == nil {
		manifest := palette.DefaultManifest()
		manifest.Assets.Prefix = assetsPath
		rc, err := palette.Resolve(manifest, opts.ThemeVariant)
		if err != nil && s.err == nil {
			s.err = err
		}
		s.theme = rc
	}

	if opts.Page != nil {
		s.page = *opts.Page
	} else {
		s.page = render.DefaultPage(pagePath)
	}
	if s.page.Action == "" {
		s.page.Action = pagePath
	}
	if s.page.MaskURL == "" {
		s.page.MaskURL = maskPath
	}
	return s
}

// Handler builds the page handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the page handler as if mounted at the root.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	s := newServer(opts,
		mountPath("", opts.RoutePath),
		mountPath("", opts.MaskPath),
		mountPath("", opts.AssetsPath),
	)
	return s.pageHandler()
}

// MaskHandler builds the per-keystroke mask handler.
func MaskHandler(fns ...OptionFn) http.Handler {
	return MaskHandlerWithOptions(NewOptions(fns...))
}

func MaskHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return maskHandler(opts)
}

func (s *server) pageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if s.opts.Guard != nil {
			if err := s.opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			s.writePage(w, r, http.StatusOK, render.RenderOptions{})
		case http.MethodPost:
			s.submit(w, r)
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func (s *server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	values, err := readValues(r)
	if err != nil {
		s.opts.Logger.Debug().Err(err).Msg("entry payload rejected")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := entry.NewForm(s.opts.FormOptions...)
	form.Fill(values)

	confirmation, err := form.Submit(r.Context())
	if err != nil {
		if verr, ok := entry.AsValidationError(err); ok {
			if wantsJSON(r) {
				writeJSON(w, http.StatusUnprocessableEntity, submitResponse{Errors: verr.Fields.Map()})
				return
			}
			s.writePage(w, r, http.StatusUnprocessableEntity, render.RenderOptions{
				Values: form.Values(),
				Errors: verr.Fields,
			})
			return
		}

		s.opts.Logger.Error().Err(err).Msg("entry submission failed")
		if wantsJSON(r) {
			writeJSON(w, http.StatusInternalServerError, submitResponse{Error: MsgSubmitFailed})
			return
		}
		s.writePage(w, r, http.StatusInternalServerError, render.RenderOptions{
			Values:     form.Values(),
			FormErrors: []string{MsgSubmitFailed},
		})
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, submitResponse{Message: confirmation.Message})
		return
	}
	s.writePage(w, r, http.StatusOK, render.RenderOptions{Confirmation: confirmation.Message})
}

func (s *server) writePage(w http.ResponseWriter, r *http.Request, status int, options render.RenderOptions) {
	if s.err != nil || s.renderer == nil {
		s.opts.Logger.Error().Err(s.err).Msg("entry form renderer unavailable")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	options.Theme = s.theme

	body, err := s.renderer.Render(r.Context(), s.page, options)
	if err != nil {
		s.opts.Logger.Error().Err(err).Str("renderer", s.renderer.Name()).Msg("entry form render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// readValues accepts url-encoded, multipart or JSON object bodies.
func readValues(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 10); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(r.PostForm))
	for key, vals := range r.PostForm {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out, nil
}

func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
