// Package i18n provides translation catalogs with `trans` and
// `trans_choice` semantics: a missing key resolves to the key itself, lines
// may hold `singular|plural` segments, and `:name` placeholders are replaced
// from the supplied arguments. Catalogs load from YAML or JSON files laid
// out per locale and fall back from a regional locale to its base language
// and finally to the configured fallback locale.
package i18n
