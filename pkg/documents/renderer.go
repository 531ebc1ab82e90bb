package documents

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-viewkit/pkg/i18n"
	"github.com/goliatone/go-viewkit/pkg/render"
	rendertemplate "github.com/goliatone/go-viewkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-viewkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewkit/pkg/routing"
	"github.com/goliatone/go-viewkit/pkg/settings"
	"github.com/goliatone/go-viewkit/pkg/stacks"
)

// Option customises an ItemsRenderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	translator       i18n.Translator
	router           routing.Resolver
	settings         settings.Store
	logger           zerolog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
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

// WithTranslator sets the translator used for header labels.
func WithTranslator(t i18n.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithRouter sets the resolver used for the edit-item-columns link.
func WithRouter(r routing.Resolver) Option {
	return func(cfg *config) {
		cfg.router = r
	}
}

// WithSettings sets the application settings store.
func WithSettings(s settings.Store) Option {
	return func(cfg *config) {
		cfg.settings = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// ItemsRenderer renders the line-item table of a document form.
type ItemsRenderer struct {
	templates  rendertemplate.TemplateRenderer
	translator i18n.Translator
	router     routing.Resolver
	settings   settings.Store
	logger     zerolog.Logger
}

// NewItemsRenderer constructs the renderer. Without a template renderer the
// embedded templates are loaded into a pongo2 engine.
func NewItemsRenderer(options ...Option) (*ItemsRenderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("documents: configure template renderer: %w", err)
		}
		templates = engine
	}

	store := cfg.settings
	if store == nil {
		store = settings.Map(nil)
	}

	return &ItemsRenderer{
		templates:  templates,
		translator: cfg.translator,
		router:     cfg.router,
		settings:   store,
		logger:     cfg.logger,
	}, nil
}

// Name identifies the renderer in a render.Registry.
func (r *ItemsRenderer) Name() string {
	return "document-items"
}

// ContentType of the rendered fragment.
func (r *ItemsRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the items table fragment for req.
func (r *ItemsRenderer) Render(ctx context.Context, req ItemsRequest) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("documents: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req = req.withDefaults()
	view := r.newView(req)

	rows := make([]string, 0, len(req.Items))
	for i, item := range req.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.templates.RenderTemplate(TemplateLineItem, view.row(i, item))
		if err != nil {
			return nil, fmt.Errorf("documents: render line item %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	view.data["rows"] = strings.Join(rows, "")

	addItem, err := r.templates.RenderTemplate(TemplateSelectItem, view.with(map[string]any{
		"type":        req.Type,
		"is_sale":     req.IsSalePrice,
		"is_purchase": req.IsPurchasePrice,
	}))
	if err != nil {
		return nil, fmt.Errorf("documents: render select item button: %w", err)
	}
	view.data["add_item"] = addItem

	if !req.Flags.HideEditItemColumns {
		editColumns, err := r.templates.RenderTemplate(TemplateEditItemColumns, view.with(map[string]any{
			"type": req.Type,
			"url":  r.editColumnsURL(req.Type),
		}))
		if err != nil {
			return nil, fmt.Errorf("documents: render edit item columns: %w", err)
		}
		view.data["edit_columns"] = editColumns
	}

	out, err := r.templates.RenderTemplate(TemplateItems, view.data)
	if err != nil {
		return nil, fmt.Errorf("documents: render items: %w", err)
	}
	return []byte(out), nil
}

// HeaderLabels returns the translated header labels for req in column order:
// name, quantity, price, amount.
func (r *ItemsRenderer) HeaderLabels(req ItemsRequest) [4]string {
	req = req.withDefaults()
	return [4]string{
		r.itemsLabel(req.Locale, req.TextItems),
		i18n.Trans(r.translator, req.Locale, req.TextQuantity),
		i18n.Trans(r.translator, req.Locale, req.TextPrice),
		i18n.Trans(r.translator, req.Locale, req.TextAmount),
	}
}

// BodyID returns the tbody id. The discount variant is used when the discount
// is shown and the discount location setting is "item" or "both".
func (r *ItemsRenderer) BodyID(flags Flags) string {
	if !r.discountPerItem(flags) {
		return BodyIDRows
	}
	return BodyIDDiscountRows
}

func (r *ItemsRenderer) discountPerItem(flags Flags) bool {
	if flags.HideDiscount {
		return false
	}
	switch r.settings.String(DiscountLocationSetting, DiscountLocationDefault) {
	case DiscountLocationItem, DiscountLocationBoth:
		return true
	default:
		return false
	}
}

func (r *ItemsRenderer) itemsLabel(locale, key string) string {
	if plural := i18n.TransChoice(r.translator, locale, key, 2); plural != key {
		return plural
	}
	return i18n.Trans(r.translator, locale, key)
}

func (r *ItemsRenderer) editColumnsURL(docType string) string {
	if r.router == nil {
		return ""
	}
	url, err := r.router.URL(EditColumnsRoute, map[string]string{"type": docType})
	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("route", EditColumnsRoute).
			Str("type", docType).
			Msg("edit item columns url unresolved")
		return ""
	}
	return url
}

type itemsView struct {
	data    map[string]any
	numbers numberFormatter
}

func (r *ItemsRenderer) newView(req ItemsRequest) itemsView {
	labels := r.HeaderLabels(req)
	themeCtx := render.BuildThemeContext(req.Theme)

	data := map[string]any{
		"type":  req.Type,
		"flags": req.Flags,
		"headers": map[string]any{
			"name":     labels[0],
			"quantity": labels[1],
			"price":    labels[2],
			"amount":   labels[3],
		},
		"tbody_id":     r.BodyID(req.Flags),
		"discount":     r.discountPerItem(req.Flags),
		"stacks":       stackMarkup(req.Stacks),
		"classes":      classes(themeCtx),
		"theme":        themeCtx,
		"rows":         "",
		"add_item":     "",
		"edit_columns": "",
		"item_count":   strconv.Itoa(len(req.Items)),
		"is_sale":      req.IsSalePrice,
		"is_purchase":  req.IsPurchasePrice,
		"text":         r.actionText(req.Locale),
	}

	return itemsView{
		data:    data,
		numbers: newNumberFormatter(req.Locale),
	}
}

// actionText translates the button and link captions up front so the view
// data stays plain values any template engine can encode.
func (r *ItemsRenderer) actionText(locale string) map[string]string {
	return map[string]string{
		"add_an":       i18n.Trans(r.translator, locale, "general.form.add_an"),
		"delete":       i18n.Trans(r.translator, locale, "general.delete"),
		"edit_columns": i18n.Trans(r.translator, locale, "general.edit_columns"),
	}
}

// with returns a shallow copy of the shared view data plus extra.
func (v itemsView) with(extra map[string]any) map[string]any {
	out := make(map[string]any, len(v.data)+len(extra))
	for key, value := range v.data {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}

func (v itemsView) row(index int, item LineItem) map[string]any {
	total := lineTotal(item)
	return v.with(map[string]any{
		"index": strconv.Itoa(index),
		"item": map[string]any{
			"id":             item.ID,
			"item_id":        item.ItemID,
			"name":           item.Name,
			"description":    item.Description,
			"quantity":       v.numbers.Quantity(item.Quantity),
			"price":          v.numbers.Money(item.Price),
			"discount":       v.numbers.Quantity(item.Discount),
			"total":          v.numbers.Money(total),
			"quantity_value": rawNumber(item.Quantity),
			"price_value":    rawNumber(item.Price),
			"discount_value": rawNumber(item.Discount),
			"total_value":    rawNumber(total),
		},
		"field_prefix": "items[" + strconv.Itoa(index) + "]",
	})
}

// stackMarkup seeds every stack name and copies the set's contents as stored.
// Sanitizing belongs to the set, see stacks.WithSanitizer.
func stackMarkup(set *stacks.Set) map[string]string {
	names := StackNames()
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = ""
	}
	if set == nil {
		return out
	}
	for name, markup := range set.Snapshot() {
		out[name] = markup
	}
	return out
}

// classes maps template slots to CSS classes, preferring theme tokens named
// "items.<slot>".
func classes(ctx render.ThemeContext) map[string]string {
	defaults := map[string]string{
		"wrapper": "row document-item-body",
		"table":   "table",
		"thead":   "thead-light",
		"tbody":   "table-padding-05",
		"input":   "form-control",
		"button":  "btn btn-link",
		"row":     "",
	}
	out := make(map[string]string, len(defaults))
	for slot, fallback := range defaults {
		out[slot] = ctx.Token("items."+slot, fallback)
	}
	return out
}
