package searchstring

import "strings"

// SearchTerm is one `column:value` token of a free-text search string.
type SearchTerm struct {
	Column string
	Value  string
}

// ParseSearch scans a search string token by token (tokens are separated by
// single spaces) and returns the tokens carrying a `column:value` pair.
// Tokens without a colon are free text and are skipped.
func ParseSearch(search string) []SearchTerm {
	var terms []SearchTerm
	for _, field := range strings.Split(search, " ") {
		if !strings.Contains(field, ":") {
			continue
		}
		parts := strings.SplitN(field, ":", 2)
		terms = append(terms, SearchTerm{Column: parts[0], Value: parts[1]})
	}
	return terms
}

// selectedValues returns the values the search string applies to column,
// matching either the column name or the filter key.
func selectedValues(terms []SearchTerm, column, key string) []string {
	var out []string
	for _, term := range terms {
		if term.Column != column && term.Column != key {
			continue
		}
		if term.Value == "" {
			continue
		}
		out = append(out, term.Value)
	}
	return out
}
