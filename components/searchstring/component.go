package searchstring

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Component bundles the filters handler, its configuration and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler for filter queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}

// RegisterNamedRoute registers the component handler on a gorilla/mux router.
func (c *Component) RegisterNamedRoute(router *mux.Router, basePath string) (*mux.Route, error) {
	return RegisterNamedRoute(router, basePath, c.Options())
}
