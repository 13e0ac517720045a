package entryform

import (
	"net/http"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform/pkg/entry"
	"github.com/goliatone/go-promoform/pkg/render"
)

// DefaultMaxBodyBytes bounds submission and mask request bodies.
const DefaultMaxBodyBytes int64 = 64 << 10

// GuardFunc runs before every request; a non-nil error rejects it. Errors
// implementing HTTPError choose the status code.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	MaskPath     string
	AssetsPath   string
	MaxBodyBytes int64
	Guard        GuardFunc

	// Renderer renders the page. Nil selects the vanilla HTML renderer.
	Renderer render.Renderer
	// Page is the page layout. Nil selects render.DefaultPage.
	Page *render.Page
	// Theme is passed to the renderer. Nil selects the built-in palette with
	// assets served by this component.
	Theme *theme.RendererConfig
	// ThemeVariant selects a variant of the built-in palette when Theme is nil.
	ThemeVariant string
	// FormOptions configure the entry form created for each submission.
	FormOptions []entry.Option
	Logger      zerolog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/",
		MaskPath:     "/mask",
		AssetsPath:   "/assets",
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       zerolog.Nop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
	}
	if opts.MaskPath == "" {
		opts.MaskPath = "/mask"
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = "/assets"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.FormOptions != nil {
		opts.FormOptions = append([]entry.Option{}, opts.FormOptions...)
	}
	if opts.Page != nil {
		page := *opts.Page
		opts.Page = &page
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaskPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaskPath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithPage(page render.Page) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Page = &page
	}
}

func WithTheme(rc *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = rc
	}
}

func WithThemeVariant(variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeVariant = variant
	}
}

func WithFormOptions(fns ...entry.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormOptions = append(o.FormOptions, fns...)
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
