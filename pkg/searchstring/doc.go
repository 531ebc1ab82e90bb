// Package searchstring builds the filter descriptors behind a model listing's
// search bar. A static configuration names, per model, the columns that can
// be filtered; the builder turns every column that is not handled by free
// text search into a descriptor with a translated label, a filter type and
// the URL of the endpoint listing the column's values.
//
// Configuration comes from YAML/JSON documents (LoadFS, Parse) or from
// OpenAPI component schemas annotated with `x-search-string` (FromOpenAPI).
// Labels go through an i18n.Translator, URLs through a routing.Resolver; a
// URL that cannot be resolved is treated as absent and never surfaces as an
// error.
package searchstring
