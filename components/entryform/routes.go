package entryform

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-promoform/pkg/renderers/vanilla"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered by RegisterRoutes.
type Routes struct {
	Page   string
	Mask   string
	Assets string
}

// MountPath returns the full page path under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the page, mask and asset handlers under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers handlers using a pre-built Options
// value. The page handler answers only its exact path.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("entryform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	routes := Routes{
		Page:   mountPath(basePath, opts.RoutePath),
		Mask:   mountPath(basePath, opts.MaskPath),
		Assets: mountPath(basePath, opts.AssetsPath),
	}
	if routes.Page == routes.Mask || strings.HasPrefix(routes.Mask, routes.Assets+"/") || routes.Mask == routes.Assets {
		return Routes{}, fmt.Errorf("entryform: conflicting routes %q, %q, %q", routes.Page, routes.Mask, routes.Assets)
	}

	s := newServer(opts, routes.Page, routes.Mask, routes.Assets)
	mux.Handle(routes.Page, exactPath(routes.Page, s.pageHandler()))
	mux.Handle(routes.Mask, maskHandler(opts))

	assetsPrefix := routes.Assets + "/"
	mux.Handle(assetsPrefix, http.StripPrefix(assetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))
	return routes, nil
}

// exactPath keeps a subtree pattern such as "/" from answering every path.
func exactPath(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
