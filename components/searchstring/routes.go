package searchstring

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-viewkit/components/internal/httpx"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return httpx.MountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the filters handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("searchstring: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := httpx.MountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

// RegisterNamedRoute registers the handler on a gorilla/mux router under
// opts.RouteName so URLs to it resolve through the same route table.
func RegisterNamedRoute(router *mux.Router, basePath string, opts Options) (*mux.Route, error) {
	if router == nil {
		return nil, fmt.Errorf("searchstring: missing router")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	route := router.Handle(httpx.MountPath(basePath, opts.RoutePath), HandlerWithOptions(opts)).
		Methods(http.MethodGet, http.MethodHead)
	if opts.RouteName != "" {
		route.Name(opts.RouteName)
	}
	if err := route.GetError(); err != nil {
		return nil, fmt.Errorf("searchstring: register route: %w", err)
	}
	return route, nil
}
