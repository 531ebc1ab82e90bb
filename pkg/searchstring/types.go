package searchstring

import "sort"

// FilterType tags how the search bar offers values for a filter.
type FilterType string

const (
	TypeSelect  FilterType = "select"
	TypeBoolean FilterType = "boolean"
	TypeDate    FilterType = "date"
)

// Filter describes one filterable column, ready for rendering.
type Filter struct {
	Key      string        `json:"key"`
	Value    string        `json:"value"`
	Type     FilterType    `json:"type"`
	URL      string        `json:"url"`
	Values   []FilterValue `json:"values"`
	Selected []string      `json:"selected,omitempty"`
}

// FilterValue is one fixed option of a filter.
type FilterValue struct {
	Key   int    `json:"key"`
	Value string `json:"value"`
}

// Config maps model identifiers to their column configuration.
type Config map[string]ModelConfig

// ModelConfig lists the columns of one model in declaration order.
type ModelConfig struct {
	Columns []Column
}

// Column is a configured column and its options.
type Column struct {
	Name    string
	Options ColumnOptions
}

// ColumnOptions mirrors the per-column configuration keys. Relationship,
// Boolean and Date are set whenever the key is present with a non-null value,
// regardless of that value; Searchable needs a truthy value.
type ColumnOptions struct {
	Searchable   bool
	Relationship bool
	Boolean      bool
	Date         bool
	Route        *RouteRef
}

// RouteRef names an explicit route for a column's value lookups.
type RouteRef struct {
	Name   string
	Params map[string]string
}

// Model returns the configuration for model and whether it exists.
func (c Config) Model(model string) (ModelConfig, bool) {
	if c == nil {
		return ModelConfig{}, false
	}
	mc, ok := c[model]
	return mc, ok
}

// Models lists configured model identifiers.
func (c Config) Models() []string {
	out := make([]string, 0, len(c))
	for model := range c {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}

// Merge returns a new Config with the models of others layered over c. A
// later source replaces a model's column list as a whole.
func (c Config) Merge(others ...Config) Config {
	out := make(Config, len(c))
	for model, mc := range c {
		out[model] = mc
	}
	for _, other := range others {
		for model, mc := range other {
			out[model] = mc
		}
	}
	return out
}
