package searchstring

import (
	"github.com/goliatone/go-viewkit/components/internal/httpx"
	pkgsearch "github.com/goliatone/go-viewkit/pkg/searchstring"
)

type Options struct {
	RoutePath     string
	RouteName     string
	ModelParam    string
	SearchParam   string
	LocaleParam   string
	DefaultLocale string
	Guard         httpx.GuardFunc

	Builder *pkgsearch.Builder
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/api/search-string",
		RouteName:   "api.search-string",
		ModelParam:  "model",
		SearchParam: "search",
		LocaleParam: "locale",
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
		opts.RoutePath = "/api/search-string"
	}
	if opts.ModelParam == "" {
		opts.ModelParam = "model"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "search"
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

// WithRouteName names the route on gorilla/mux routers. An empty name leaves
// the route unnamed.
func WithRouteName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RouteName = name
	}
}

func WithModelParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ModelParam = name
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// WithLocaleParam sets the query parameter carrying the locale. Without it
// the Accept-Language header decides.
func WithLocaleParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LocaleParam = name
	}
}

func WithDefaultLocale(locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLocale = locale
	}
}

func WithGuard(guard httpx.GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithBuilder(builder *pkgsearch.Builder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Builder = builder
	}
}
