package searchstring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionKey marks OpenAPI component schemas (and their properties) that
// take part in search string filtering.
const ExtensionKey = "x-search-string"

type schemaExtension struct {
	Model string `json:"model"`
}

type propertyExtension struct {
	Searchable   bool            `json:"searchable"`
	Relationship json.RawMessage `json:"relationship"`
	Boolean      json.RawMessage `json:"boolean"`
	Date         json.RawMessage `json:"date"`
	Route        json.RawMessage `json:"route"`
	Skip         bool            `json:"skip"`
}

// FromOpenAPI derives column configuration from the component schemas of an
// OpenAPI 3 document. Only schemas carrying the `x-search-string` extension
// are used; the extension may set `model` to override the schema name as the
// configuration key. Properties become columns in alphabetical order and
// property level extensions carry the column options (`false` or
// `skip: true` drops the property). `format: date|date-time` implies a date
// filter and `type: boolean` a boolean one.
func FromOpenAPI(ctx context.Context, data []byte) (Config, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("searchstring: load openapi: %w", err)
	}

	cfg := make(Config)
	if doc.Components == nil {
		return cfg, nil
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		raw, ok := ref.Value.Extensions[ExtensionKey]
		if !ok {
			continue
		}
		if enabled, isBool := raw.(bool); isBool && !enabled {
			continue
		}

		var ext schemaExtension
		if err := decodeExtension(raw, &ext); err != nil {
			return nil, fmt.Errorf("searchstring: schema %q: %w", name, err)
		}

		model := strings.TrimSpace(ext.Model)
		if model == "" {
			model = name
		}
		if _, exists := cfg[model]; exists {
			return nil, fmt.Errorf("searchstring: duplicate model %q in openapi document", model)
		}

		columns, err := columnsFromSchema(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("searchstring: schema %q: %w", name, err)
		}
		cfg[model] = ModelConfig{Columns: columns}
	}
	return cfg, nil
}

func columnsFromSchema(schema *openapi3.Schema) ([]Column, error) {
	props := make([]string, 0, len(schema.Properties))
	for prop := range schema.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)

	columns := make([]Column, 0, len(props))
	for _, prop := range props {
		ref := schema.Properties[prop]
		if ref == nil || ref.Value == nil {
			continue
		}
		value := ref.Value

		var opts ColumnOptions
		if raw, ok := value.Extensions[ExtensionKey]; ok {
			if enabled, isBool := raw.(bool); isBool && !enabled {
				continue
			}
			var ext propertyExtension
			if err := decodeExtension(raw, &ext); err != nil {
				return nil, fmt.Errorf("property %q: %w", prop, err)
			}
			if ext.Skip {
				continue
			}
			opts.Searchable = ext.Searchable
			opts.Relationship = present(ext.Relationship)
			opts.Boolean = present(ext.Boolean)
			opts.Date = present(ext.Date)

			route, err := routeFromJSON(ext.Route)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", prop, err)
			}
			opts.Route = route
		}

		if value.Type != nil && value.Type.Is(openapi3.TypeBoolean) {
			opts.Boolean = true
		}
		if value.Format == "date" || value.Format == "date-time" {
			opts.Date = true
		}

		columns = append(columns, Column{Name: prop, Options: opts})
	}
	return columns, nil
}

func routeFromJSON(raw json.RawMessage) (*RouteRef, error) {
	if !present(raw) {
		return nil, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if strings.TrimSpace(name) == "" {
			return nil, nil
		}
		return &RouteRef{Name: strings.TrimSpace(name)}, nil
	}

	var obj struct {
		Name   string            `json:"name"`
		Params map[string]string `json:"params"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("route must be a name or an object with name and params: %w", err)
	}
	if strings.TrimSpace(obj.Name) == "" {
		return nil, nil
	}
	return &RouteRef{Name: strings.TrimSpace(obj.Name), Params: obj.Params}, nil
}

func decodeExtension(raw any, out any) error {
	var data []byte
	switch v := raw.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	case bool:
		return nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = encoded
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, out)
}

func present(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}
