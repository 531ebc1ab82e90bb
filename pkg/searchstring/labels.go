package searchstring

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-viewkit/pkg/i18n"
)

// label namespaces, tried in order
var labelNamespaces = []string{"general.", "search_string.columns."}

// Label derives the display label of column. Known suffixes are stripped and
// the plural form is looked up in each namespace as a singular choice; the
// first lookup that resolves wins. Otherwise the stripped singular name is
// looked up, ending with the raw key of the last namespace when nothing
// matches.
func Label(t i18n.Translator, locale, column string) string {
	name := trimLabelSuffix(column)
	plural := inflection.Plural(name)

	for _, ns := range labelNamespaces {
		key := ns + plural
		if value := i18n.TransChoice(t, locale, key, 1); value != key {
			return value
		}
	}

	key := labelNamespaces[0] + name
	value := i18n.Trans(t, locale, key)
	if value == key {
		value = i18n.Trans(t, locale, labelNamespaces[1]+name)
	}
	return value
}

// trimLabelSuffix removes `_id` (or, when absent, `_code`) everywhere in
// column.
func trimLabelSuffix(column string) string {
	switch {
	case strings.Contains(column, "_id"):
		return strings.ReplaceAll(column, "_id", "")
	case strings.Contains(column, "_code"):
		return strings.ReplaceAll(column, "_code", "")
	default:
		return column
	}
}

// trimIDSuffix removes `_id` everywhere in column.
func trimIDSuffix(column string) string {
	if strings.Contains(column, "_id") {
		return strings.ReplaceAll(column, "_id", "")
	}
	return column
}

// Slug lowercases s, folds accents and joins alphanumeric runs with sep.
func Slug(s, sep string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
