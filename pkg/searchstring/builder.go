package searchstring

import (
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-viewkit/pkg/i18n"
	"github.com/goliatone/go-viewkit/pkg/routing"
)

const (
	relationshipSuffix = ".id"
	moduleMarker       = "Modules"
	moduleSeparator    = "::"
	indexRouteSuffix   = ".index"
)

// Option customises a Builder.
type Option func(*Builder)

// WithConfig sets the column configuration.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.config = cfg
	}
}

// WithTranslator sets the translator used for labels and boolean values.
func WithTranslator(t i18n.Translator) Option {
	return func(b *Builder) {
		b.translator = t
	}
}

// WithRouter sets the named route resolver used for filter URLs.
func WithRouter(r routing.Resolver) Option {
	return func(b *Builder) {
		b.router = r
	}
}

// WithLocale sets the default locale; Request.Locale overrides it.
func WithLocale(locale string) Option {
	return func(b *Builder) {
		b.locale = strings.TrimSpace(locale)
	}
}

// WithLogger sets the logger. Route resolution misses are logged at debug.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder produces filter descriptors for the search bar of a model listing.
type Builder struct {
	config     Config
	translator i18n.Translator
	router     routing.Resolver
	locale     string
	logger     zerolog.Logger
}

// NewBuilder constructs a Builder. Without a config every model yields an
// empty filter list; without a router only boolean and date filters survive.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Request carries the per-render inputs of the builder.
type Request struct {
	// Model is the configuration key, typically a fully qualified model
	// class such as `App\Models\Document\Document` or
	// `Modules\Inventory\Models\Item`.
	Model string
	// Search is the raw `search` query parameter of the current request.
	Search string
	// Locale overrides the builder's default locale.
	Locale string
}

// Filters builds the descriptors for req.Model in column declaration order.
func (b *Builder) Filters(req Request) []Filter {
	filters := []Filter{}
	if b == nil {
		return filters
	}

	mc, ok := b.config.Model(req.Model)
	if !ok || len(mc.Columns) == 0 {
		return filters
	}

	locale := req.Locale
	if locale == "" {
		locale = b.locale
	}
	terms := ParseSearch(req.Search)

	for _, column := range mc.Columns {
		opts := column.Options
		if opts.Searchable {
			continue
		}

		url := b.filterURL(req.Model, column.Name, opts)
		if url == "" && !opts.Boolean && !opts.Date {
			continue
		}

		key := FilterKey(column.Name, opts)
		filters = append(filters, Filter{
			Key:      key,
			Value:    Label(b.translator, locale, column.Name),
			Type:     FilterTypeOf(opts),
			URL:      url,
			Values:   b.filterValues(locale, opts),
			Selected: selectedValues(terms, column.Name, key),
		})
	}
	return filters
}

// FilterKey returns the key a filter is submitted under.
func FilterKey(column string, opts ColumnOptions) string {
	if opts.Relationship {
		return column + relationshipSuffix
	}
	return column
}

// FilterTypeOf returns the filter type; date wins over boolean.
func FilterTypeOf(opts ColumnOptions) FilterType {
	typ := TypeSelect
	if opts.Boolean {
		typ = TypeBoolean
	}
	if opts.Date {
		typ = TypeDate
	}
	return typ
}

// IndexRouteName derives the conventional index route of a column, e.g.
// `contact_id` → `contacts.index`, namespaced for module models:
// `Modules\Inventory\...` + `warehouse_id` → `inventory::warehouses.index`.
func IndexRouteName(model, column string) string {
	prefix := ""
	if strings.Contains(model, moduleMarker) {
		parts := strings.Split(model, `\`)
		if len(parts) > 1 {
			prefix = Slug(parts[1], "-") + moduleSeparator
		}
	}
	return prefix + inflection.Plural(trimIDSuffix(column)) + indexRouteSuffix
}

func (b *Builder) filterURL(model, column string, opts ColumnOptions) string {
	if opts.Boolean || opts.Date {
		return ""
	}

	name := IndexRouteName(model, column)
	var params map[string]string
	if opts.Route != nil && opts.Route.Name != "" {
		name = opts.Route.Name
		params = opts.Route.Params
	}

	if b.router == nil {
		return ""
	}

	url, err := b.router.URL(name, params)
	if err != nil {
		b.logger.Debug().
			Err(err).
			Str("model", model).
			Str("column", column).
			Str("route", name).
			Msg("search string filter url unresolved")
		return ""
	}
	return url
}

func (b *Builder) filterValues(locale string, opts ColumnOptions) []FilterValue {
	if !opts.Boolean {
		return []FilterValue{}
	}
	return []FilterValue{
		{Key: 0, Value: i18n.Trans(b.translator, locale, "general.no")},
		{Key: 1, Value: i18n.Trans(b.translator, locale, "general.yes")},
	}
}
