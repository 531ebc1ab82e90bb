package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultFallbackLocale = "en"

// Catalog is an in-memory Translator backed by flattened, dot separated keys
// per locale (e.g. "general.items").
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithFallbackLocale sets the locale consulted after the requested locale and
// its base language.
func WithFallbackLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			c.fallback = trimmed
		}
	}
}

var _ ChoiceTranslator = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog(options ...CatalogOption) *Catalog {
	c := &Catalog{
		messages: make(map[string]map[string]string),
		fallback: defaultFallbackLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Add registers messages for locale. Keys are used as given.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[key] = value
	}
}

// AddNested flattens a nested document (as decoded from YAML) under prefix
// and registers it for locale.
func (c *Catalog) AddNested(locale, prefix string, doc map[string]any) {
	flat := make(map[string]string)
	flatten(prefix, doc, flat)
	c.Add(locale, flat)
}

// Locales lists the locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	line, err := c.lookup(locale, key)
	if err != nil {
		return "", err
	}
	return Replace(line, args...), nil
}

// TranslateChoice implements ChoiceTranslator.
func (c *Catalog) TranslateChoice(locale, key string, count int, args ...any) (string, error) {
	line, err := c.lookup(locale, key)
	if err != nil {
		return "", err
	}
	return Replace(SelectChoice(line, count, locale), args...), nil
}

func (c *Catalog) lookup(locale, key string) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrMissingTranslation)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		if bucket, ok := c.messages[candidate]; ok {
			if line, ok := bucket[key]; ok {
				return line, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q (locale %q)", ErrMissingTranslation, key, locale)
}

func (c *Catalog) candidates(locale string) []string {
	out := make([]string, 0, 3)
	add := func(value string) {
		if value == "" {
			return
		}
		for _, existing := range out {
			if existing == value {
				return
			}
		}
		out = append(out, value)
	}

	normalized := normalizeLocale(locale)
	add(normalized)
	if tag, err := language.Parse(normalized); err == nil {
		base, _ := tag.Base()
		add(base.String())
	}
	add(normalizeLocale(c.fallback))
	return out
}

// LoadFS walks fsys for YAML or JSON catalogs. Two layouts are supported:
// `<locale>/<namespace>.yaml`, whose keys are prefixed with the namespace,
// and `<locale>.yaml` holding fully qualified nested keys.
func LoadFS(fsys fs.FS, options ...CatalogOption) (*Catalog, error) {
	catalog := NewCatalog(options...)
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", p, err)
		}

		locale, namespace := splitCatalogPath(p)
		if locale == "" {
			return fmt.Errorf("i18n: cannot infer locale from %s", p)
		}
		catalog.AddNested(locale, namespace, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func splitCatalogPath(p string) (locale, namespace string) {
	dir, file := path.Split(p)
	stem := strings.TrimSuffix(file, path.Ext(file))
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return normalizeLocale(stem), ""
	}
	parts := strings.Split(dir, "/")
	locale = normalizeLocale(parts[len(parts)-1])
	return locale, stem
}

func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			flatten(joinKey(prefix, key), nested, out)
		}
	case map[any]any:
		for key, nested := range v {
			flatten(joinKey(prefix, fmt.Sprint(key)), nested, out)
		}
	case nil:
		if prefix != "" {
			out[prefix] = ""
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
