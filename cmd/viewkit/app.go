package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-viewkit/internal/config"
	"github.com/goliatone/go-viewkit/internal/logging"
	"github.com/goliatone/go-viewkit/pkg/documents"
	"github.com/goliatone/go-viewkit/pkg/i18n"
	"github.com/goliatone/go-viewkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewkit/pkg/routing"
	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

// app holds the loaded configuration and the services built from it.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

func loadApp(flags *rootFlags, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:   flags.configFile,
		DotEnv: flags.envFile,
	})
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Log.Level = level
	}

	logger, closer, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, closer: closer}, nil
}

func (a *app) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *app) catalog() (*i18n.Catalog, error) {
	options := []i18n.CatalogOption{i18n.WithFallbackLocale(a.cfg.FallbackLocale)}
	dir := strings.TrimSpace(a.cfg.Paths.Translations)
	if dir == "" {
		return i18n.NewCatalog(options...), nil
	}
	catalog, err := i18n.LoadFS(os.DirFS(dir), options...)
	if err != nil {
		return nil, fmt.Errorf("viewkit: translations: %w", err)
	}
	a.logger.Debug().Str("path", dir).Strs("locales", catalog.Locales()).Msg("translations loaded")
	return catalog, nil
}

// searchConfig merges the column files with any OpenAPI derived models; the
// OpenAPI document wins for models present in both.
func (a *app) searchConfig(ctx context.Context) (searchstring.Config, error) {
	cfg := searchstring.Config{}
	if dir := strings.TrimSpace(a.cfg.Paths.SearchString); dir != "" {
		loaded, err := searchstring.LoadFS(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("viewkit: search string config: %w", err)
		}
		cfg = cfg.Merge(loaded)
	}
	if path := strings.TrimSpace(a.cfg.Paths.OpenAPI); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("viewkit: openapi: %w", err)
		}
		derived, err := searchstring.FromOpenAPI(ctx, data)
		if err != nil {
			return nil, err
		}
		cfg = cfg.Merge(derived)
	}
	a.logger.Debug().Int("models", len(cfg)).Msg("search string config loaded")
	return cfg, nil
}

func (a *app) filterBuilder(cfg searchstring.Config, catalog i18n.Translator, resolver routing.Resolver) *searchstring.Builder {
	return searchstring.NewBuilder(
		searchstring.WithConfig(cfg),
		searchstring.WithTranslator(catalog),
		searchstring.WithRouter(resolver),
		searchstring.WithLocale(a.cfg.Locale),
		searchstring.WithLogger(a.logger),
	)
}

func (a *app) itemsRenderer(catalog i18n.Translator, resolver routing.Resolver) (*documents.ItemsRenderer, error) {
	options := []documents.Option{
		documents.WithTranslator(catalog),
		documents.WithRouter(resolver),
		documents.WithSettings(a.cfg.Settings()),
		documents.WithLogger(a.logger),
	}
	if a.cfg.Templates.Engine == config.EngineGoTemplate {
		engine, err := gotemplate.NewGoTemplate(
			gotemplate.WithFS(documents.TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("viewkit: templates: %w", err)
		}
		options = append(options, documents.WithTemplateRenderer(engine))
	}
	a.logger.Debug().Str("engine", a.cfg.Templates.Engine).Msg("items renderer configured")
	return documents.NewItemsRenderer(options...)
}

// routeTable resolves the configured routes without serving them.
func (a *app) routeTable() (*routing.MuxResolver, error) {
	resolver, err := routing.NewTable(a.cfg.Routes)
	if err != nil {
		return nil, fmt.Errorf("viewkit: routes: %w", err)
	}
	return resolver, nil
}
