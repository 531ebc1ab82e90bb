// Package config loads the process configuration: built-in defaults, then an
// optional YAML or JSON file, then a .env file and VIEWKIT_ environment
// variables. Nested keys use "__" in variable names, so VIEWKIT_LOG__LEVEL
// sets log.level.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/goliatone/go-viewkit/internal/logging"
	"github.com/goliatone/go-viewkit/pkg/documents"
	"github.com/goliatone/go-viewkit/pkg/routing"
	"github.com/goliatone/go-viewkit/pkg/settings"
)

// DefaultEnvPrefix prefixes every environment override.
const DefaultEnvPrefix = "VIEWKIT_"

// Template engines accepted by templates.engine.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

type Config struct {
	Server         Server          `koanf:"server"`
	Locale         string          `koanf:"locale"`
	FallbackLocale string          `koanf:"fallback_locale"`
	Paths          Paths           `koanf:"paths"`
	Templates      Templates       `koanf:"templates"`
	Log            logging.Config  `koanf:"log"`
	Routes         []routing.Route `koanf:"routes"`

	k *koanf.Koanf
}

type Server struct {
	Address  string `koanf:"address"`
	BasePath string `koanf:"base_path"`
}

// Paths point at the data directories. Blank paths fall back to the embedded
// or empty defaults of each package.
type Paths struct {
	SearchString string `koanf:"search_string"`
	Translations string `koanf:"translations"`
	OpenAPI      string `koanf:"openapi"`
}

// Templates selects the engine rendering the document items table.
type Templates struct {
	Engine string `koanf:"engine"`
}

// LoadOptions selects the sources of Load.
type LoadOptions struct {
	File      string
	DotEnv    string
	EnvPrefix string
}

func defaults() map[string]any {
	values := map[string]any{
		"server.address":   ":8080",
		"server.base_path": "/",
		"locale":           "en",
		"fallback_locale":  "en",
		"log.level":        "info",
		"log.format":       logging.FormatConsole,
		"templates.engine": EnginePongo2,
		"routes":           []any{},
	}
	values[documents.DiscountLocationSetting] = documents.DiscountLocationDefault
	return values
}

// Load merges the configured sources. A missing .env file is ignored; a
// missing config file is an error.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := strings.TrimSpace(opts.File); path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if path := strings.TrimSpace(opts.DotEnv); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	if err := k.Load(env.Provider(prefix, ".", envKey(prefix)), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{k: k}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

func envKey(prefix string) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.ReplaceAll(key, "__", ".")
	}
}

// Validate checks the values other packages would otherwise reject late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Locale) == "" {
		return errors.New("config: locale is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Templates.Engine {
	case EnginePongo2, EngineGoTemplate:
	default:
		return fmt.Errorf("config: templates.engine: unknown value %q", c.Templates.Engine)
	}
	switch loc := c.String(documents.DiscountLocationSetting, documents.DiscountLocationDefault); loc {
	case documents.DiscountLocationDefault, documents.DiscountLocationItem, documents.DiscountLocationBoth:
	default:
		return fmt.Errorf("config: %s: unknown value %q", documents.DiscountLocationSetting, loc)
	}
	return nil
}

// String reads any loaded key, including ones without a struct field.
func (c *Config) String(key, fallback string) string {
	return c.Settings().String(key, fallback)
}

// Settings exposes the merged configuration as an application settings store.
func (c *Config) Settings() *settings.Koanf {
	if c == nil {
		return settings.New(nil)
	}
	return settings.New(c.k)
}
