package render

import (
	"strings"

	"github.com/goliatone/go-viewkit/pkg/i18n"
)

// MissingTranslationHandler decides what a template prints for a key the
// translator could not resolve.
type MissingTranslationHandler func(locale, key string, err error) string

func missingTranslationDefault(_ string, key string, _ error) string {
	return key
}

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// Locale every helper translates into.
	Locale string
	// TransName customizes the plain helper name (defaults to "trans").
	TransName string
	// ChoiceName customizes the plural helper name (defaults to "trans_choice").
	ChoiceName string
	// OnMissing controls the string returned when a translation is missing.
	// The default returns the key itself.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers bound to cfg.Locale, suitable for the
// data map of a pongo2 render or for gotemplate.WithTemplateFunc:
//
//	{{ trans("invoices.price") }}
//	{{ trans_choice("general.items", 2) }}
//	{{ current_locale() }}
func TemplateI18nFuncs(t i18n.Translator, cfg TemplateI18nConfig) map[string]any {
	transName := strings.TrimSpace(cfg.TransName)
	if transName == "" {
		transName = "trans"
	}
	choiceName := strings.TrimSpace(cfg.ChoiceName)
	if choiceName == "" {
		choiceName = "trans_choice"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	locale := strings.TrimSpace(cfg.Locale)

	return map[string]any{
		transName: func(key string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(locale, key, i18n.ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, err)
			}
			return msg
		},
		choiceName: func(key string, count int) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(locale, key, i18n.ErrMissingTranslator)
			}
			msg := i18n.TransChoice(t, locale, key, count)
			if msg == key {
				return onMissing(locale, key, i18n.ErrMissingTranslation)
			}
			return msg
		},
		"current_locale": func() string {
			return locale
		},
	}
}
