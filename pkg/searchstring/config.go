package searchstring

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and parses every YAML/JSON column configuration file.
// Defining the same model twice across files is an error.
func LoadFS(fsys fs.FS) (Config, error) {
	cfg := make(Config)
	if fsys == nil {
		return cfg, nil
	}

	sources := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("searchstring: read %s: %w", path, err)
		}

		parsed, err := Parse(data)
		if err != nil {
			return fmt.Errorf("searchstring: %s: %w", path, err)
		}

		for model, mc := range parsed {
			if previous, exists := sources[model]; exists {
				return fmt.Errorf("searchstring: duplicate model %q (files %s and %s)", model, previous, path)
			}
			sources[model] = path
			cfg[model] = mc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes one configuration document. The document maps model
// identifiers to a `columns` entry, declared either as a mapping of column
// name to options or as a list mixing bare column names and single key
// mappings. Declaration order is preserved.
func Parse(data []byte) (Config, error) {
	cfg := make(Config)
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(root.Content) == 0 {
		return cfg, nil
	}

	doc := root.Content[0]
	if isNull(doc) {
		return cfg, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of models", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		model := strings.TrimSpace(doc.Content[i].Value)
		if model == "" {
			return nil, fmt.Errorf("line %d: empty model identifier", doc.Content[i].Line)
		}
		if _, exists := cfg[model]; exists {
			return nil, fmt.Errorf("line %d: duplicate model %q", doc.Content[i].Line, model)
		}

		mc, err := parseModel(doc.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", model, err)
		}
		cfg[model] = mc
	}
	return cfg, nil
}

func parseModel(node *yaml.Node) (ModelConfig, error) {
	if isNull(node) {
		return ModelConfig{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return ModelConfig{}, fmt.Errorf("line %d: expected a mapping with a columns entry", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "columns" {
			continue
		}
		columns, err := parseColumns(node.Content[i+1])
		if err != nil {
			return ModelConfig{}, err
		}
		return ModelConfig{Columns: columns}, nil
	}
	return ModelConfig{}, nil
}

func parseColumns(node *yaml.Node) ([]Column, error) {
	var columns []Column
	seen := make(map[string]struct{})

	add := func(nameNode, optionsNode *yaml.Node) error {
		name := strings.TrimSpace(nameNode.Value)
		if name == "" {
			return fmt.Errorf("line %d: empty column name", nameNode.Line)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("line %d: duplicate column %q", nameNode.Line, name)
		}
		seen[name] = struct{}{}

		opts, err := parseOptions(optionsNode)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		columns = append(columns, Column{Name: name, Options: opts})
		return nil
	}

	switch {
	case isNull(node):
		return nil, nil
	case node.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if err := add(node.Content[i], node.Content[i+1]); err != nil {
				return nil, err
			}
		}
	case node.Kind == yaml.SequenceNode:
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				if err := add(item, nil); err != nil {
					return nil, err
				}
			case yaml.MappingNode:
				if len(item.Content) != 2 {
					return nil, fmt.Errorf("line %d: list entries must map a single column", item.Line)
				}
				if err := add(item.Content[0], item.Content[1]); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("line %d: unsupported column entry", item.Line)
			}
		}
	default:
		return nil, fmt.Errorf("line %d: columns must be a mapping or a list", node.Line)
	}
	return columns, nil
}

func parseOptions(node *yaml.Node) (ColumnOptions, error) {
	var opts ColumnOptions
	if node == nil || node.Kind != yaml.MappingNode {
		return opts, nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "searchable":
			opts.Searchable = truthy(value)
		case "relationship":
			opts.Relationship = !isNull(value)
		case "boolean":
			opts.Boolean = !isNull(value)
		case "date":
			opts.Date = !isNull(value)
		case "route":
			ref, err := parseRoute(value)
			if err != nil {
				return opts, err
			}
			opts.Route = ref
		}
	}
	return opts, nil
}

func parseRoute(node *yaml.Node) (*RouteRef, error) {
	switch {
	case isNull(node):
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		name := strings.TrimSpace(node.Value)
		if name == "" {
			return nil, nil
		}
		return &RouteRef{Name: name}, nil
	case node.Kind == yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		if len(node.Content) > 2 || node.Content[0].Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: route lists take a name and optional parameters", node.Line)
		}
		ref := &RouteRef{Name: strings.TrimSpace(node.Content[0].Value)}
		if len(node.Content) == 2 {
			params, err := parseRouteParams(node.Content[1])
			if err != nil {
				return nil, err
			}
			ref.Params = params
		}
		return ref, nil
	default:
		return nil, fmt.Errorf("line %d: route must be a name or a [name, params] list", node.Line)
	}
}

func parseRouteParams(node *yaml.Node) (map[string]string, error) {
	switch {
	case isNull(node):
		return nil, nil
	case node.Kind == yaml.MappingNode:
		params := make(map[string]string, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			params[node.Content[i].Value] = node.Content[i+1].Value
		}
		return params, nil
	case node.Kind == yaml.ScalarNode:
		values, err := url.ParseQuery(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: route query: %w", node.Line, err)
		}
		params := make(map[string]string, len(values))
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			params[key] = values.Get(key)
		}
		return params, nil
	default:
		return nil, fmt.Errorf("line %d: route parameters must be a mapping or a query string", node.Line)
	}
}

func truthy(node *yaml.Node) bool {
	if isNull(node) {
		return false
	}
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			var b bool
			return node.Decode(&b) == nil && b
		case "!!int":
			var n int64
			if err := node.Decode(&n); err != nil {
				return true
			}
			return n != 0
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return true
			}
			return f != 0
		default:
			return node.Value != "" && node.Value != "0"
		}
	case yaml.SequenceNode, yaml.MappingNode:
		return len(node.Content) > 0
	}
	return true
}

func isNull(node *yaml.Node) bool {
	if node == nil {
		return true
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 0 {
		return true
	}
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
