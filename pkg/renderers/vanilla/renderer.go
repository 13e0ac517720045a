package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-promoform/pkg/palette"
	"github.com/goliatone/go-promoform/pkg/render"
	rendertemplate "github.com/goliatone/go-promoform/pkg/render/template"
	gotemplate "github.com/goliatone/go-promoform/pkg/render/template/gotemplate"
)

// ErrNilTemplates is returned when the renderer has no template engine.
var ErrNilTemplates = errors.New("vanilla renderer: template renderer is nil")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	scripts          []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// form.tpl and field.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet in the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithScript adds a deferred script to the end of the page body.
func WithScript(src string) Option {
	return func(cfg *config) {
		if src = strings.TrimSpace(src); src != "" {
			cfg.scripts = append(cfg.scripts, src)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet so the page renders
// without serving assets.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders the entry page as a standalone HTML document.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheets  []string
	scripts      []string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:   renderer,
		stylesheets: cfg.stylesheets,
		scripts:     cfg.scripts,
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render binds options to the page and executes form.tpl. A theme stylesheet
// asset, when the theme declares one, is linked ahead of any configured
// stylesheets.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, ErrNilTemplates
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	data := map[string]any{
		"page":          page.Apply(options),
		"form_errors":   render.MergeFormErrors(options.FormErrors),
		"confirmation":  strings.TrimSpace(options.Confirmation),
		"theme":         themeContext(options.Theme),
		"stylesheets":   r.stylesheetsFor(options.Theme),
		"scripts":       r.scripts,
		"inline_styles": r.inlineStyles,
	}

	result, err := r.templates.RenderTemplate("form", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) stylesheetsFor(rc *theme.RendererConfig) []string {
	out := make([]string, 0, len(r.stylesheets)+1)
	if rc != nil && rc.AssetURL != nil {
		if href := rc.AssetURL("stylesheet"); href != "" {
			out = append(out, href)
		}
	}
	return append(out, r.stylesheets...)
}

func themeContext(rc *theme.RendererConfig) map[string]any {
	if rc == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    rc.Theme,
		"variant": rc.Variant,
		"style":   palette.InlineStyle(rc.CSSVars),
	}
}
