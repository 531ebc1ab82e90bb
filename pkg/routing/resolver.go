package routing

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/mux"
)

var (
	// ErrRouteNotFound is returned when no route carries the requested name.
	ErrRouteNotFound = errors.New("routing: route not found")
	// ErrMissingParameter is returned when a path variable has no value.
	ErrMissingParameter = errors.New("routing: missing route parameter")
)

// Resolver turns a route name plus parameters into a URL. Parameters that do
// not match a path variable are appended as query parameters.
type Resolver interface {
	URL(name string, params map[string]string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string, params map[string]string) (string, error)

// URL calls f.
func (f ResolverFunc) URL(name string, params map[string]string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return f(name, params)
}

// MuxResolver resolves names against the named routes of a gorilla/mux router.
type MuxResolver struct {
	router  *mux.Router
	baseURL string
}

// Option customises a MuxResolver.
type Option func(*MuxResolver)

// WithBaseURL prefixes every resolved path, e.g. "https://app.example.com".
func WithBaseURL(base string) Option {
	return func(r *MuxResolver) {
		r.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

var _ Resolver = (*MuxResolver)(nil)

// NewMuxResolver wraps router. The router may be the one serving requests so
// handlers and URL generation share the same route table.
func NewMuxResolver(router *mux.Router, options ...Option) *MuxResolver {
	r := &MuxResolver{router: router}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// URL implements Resolver.
func (r *MuxResolver) URL(name string, params map[string]string) (string, error) {
	if r == nil || r.router == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	route := r.router.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	vars, err := route.GetVarNames()
	if err != nil {
		return "", fmt.Errorf("routing: route %q: %w", name, err)
	}

	used := make(map[string]struct{}, len(vars))
	pairs := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		value, ok := params[v]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingParameter, v, name)
		}
		used[v] = struct{}{}
		pairs = append(pairs, v, value)
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("routing: build %q: %w", name, err)
	}

	query := url.Values{}
	for key, value := range params {
		if _, ok := used[key]; ok {
			continue
		}
		query.Set(key, value)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return r.baseURL + u.String(), nil
}

// Names returns the names of every named route, sorted.
func (r *MuxResolver) Names() []string {
	if r == nil || r.router == nil {
		return nil
	}
	var names []string
	_ = r.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if name := route.GetName(); name != "" {
			names = append(names, name)
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// Route declares a named path template.
type Route struct {
	Name string `json:"name" yaml:"name" koanf:"name"`
	Path string `json:"path" yaml:"path" koanf:"path"`
}

// NewTable builds a resolver over a router holding only the given named
// routes. It is meant for applications whose pages live elsewhere but whose
// URLs still need to be generated here.
func NewTable(routes []Route, options ...Option) (*MuxResolver, error) {
	router := mux.NewRouter()
	if err := Register(router, routes); err != nil {
		return nil, err
	}
	return NewMuxResolver(router, options...), nil
}

// Register adds the named path templates to router without handlers.
func Register(router *mux.Router, routes []Route) error {
	if router == nil {
		return errors.New("routing: router is required")
	}
	seen := make(map[string]struct{}, len(routes))
	for _, rt := range routes {
		name := strings.TrimSpace(rt.Name)
		path := strings.TrimSpace(rt.Path)
		if name == "" || path == "" {
			return fmt.Errorf("routing: route name and path are required (name %q, path %q)", rt.Name, rt.Path)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("routing: duplicate route name %q", name)
		}
		seen[name] = struct{}{}
		route := router.NewRoute().Path(path).Name(name)
		if err := route.GetError(); err != nil {
			return fmt.Errorf("routing: route %q: %w", name, err)
		}
	}
	return nil
}
