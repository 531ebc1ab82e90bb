package documents

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-viewkit/components/internal/httpx"
	"github.com/goliatone/go-viewkit/pkg/render"
)

const (
	defaultRoutePath    = "/documents/{type}/items"
	defaultMaxBodyBytes = 1 << 20
)

type Options struct {
	RoutePath     string
	RouteName     string
	TypeParam     string
	LocaleParam   string
	DefaultLocale string
	MaxBodyBytes  int64
	Guard         httpx.GuardFunc

	// Renderer is usually (*documents.ItemsRenderer).AsComponent().
	Renderer render.Renderer
	Theme    *theme.RendererConfig
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		RouteName:    "documents.items",
		TypeParam:    "type",
		LocaleParam:  "locale",
		MaxBodyBytes: defaultMaxBodyBytes,
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
		opts.RoutePath = defaultRoutePath
	}
	if opts.TypeParam == "" {
		opts.TypeParam = "type"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
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

func WithRouteName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RouteName = name
	}
}

// WithTypeParam names the path variable, or query parameter when the route has
// no such variable, carrying the document type.
func WithTypeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TypeParam = name
	}
}

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

// WithMaxBodyBytes caps POST bodies. Values <= 0 restore the default of 1 MiB.
func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
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

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}
