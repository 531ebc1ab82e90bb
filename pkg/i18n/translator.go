package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslation is returned when a key is not present in any
	// catalog reachable from the requested locale.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrMissingTranslator signals that no translator was configured.
	ErrMissingTranslator = errors.New("i18n: translator is nil")
)

// Translator resolves a translation key for a locale. Args replace `:name`
// placeholders and may be given as a map[string]any or as name/value pairs.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// ChoiceTranslator extends Translator with pluralization aware lookups over
// `singular|plural` style lines.
type ChoiceTranslator interface {
	Translator
	TranslateChoice(locale, key string, count int, args ...any) (string, error)
}

// Trans returns the translation for key, or the key itself when the
// translation is missing. Callers detect a miss by comparing against key.
func Trans(t Translator, locale, key string, args ...any) string {
	if t == nil || strings.TrimSpace(key) == "" {
		return key
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// TransChoice returns the plural form of key matching count, or the key
// itself when the translation is missing.
func TransChoice(t Translator, locale, key string, count int, args ...any) string {
	if t == nil || strings.TrimSpace(key) == "" {
		return key
	}

	if ct, ok := t.(ChoiceTranslator); ok {
		msg, err := ct.TranslateChoice(locale, key, count, args...)
		if err != nil || msg == "" {
			return key
		}
		return msg
	}

	line, err := t.Translate(locale, key)
	if err != nil || line == "" {
		return key
	}
	return Replace(SelectChoice(line, count, locale), args...)
}

// Func adapts a function to the Translator interface.
type Func func(locale, key string, args ...any) (string, error)

// Translate calls f.
func (f Func) Translate(locale, key string, args ...any) (string, error) {
	if f == nil {
		return "", ErrMissingTranslator
	}
	return f(locale, key, args...)
}
