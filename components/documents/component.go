package documents

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Component bundles the items handler, its configuration and routing helpers.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}

func (c *Component) RegisterNamedRoute(router *mux.Router, basePath string) (*mux.Route, error) {
	return RegisterNamedRoute(router, basePath, c.Options())
}
