package i18n

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Replace substitutes `:name` placeholders in line. A placeholder written as
// `:Name` receives the value with an upper cased first letter and `:NAME`
// receives the value fully upper cased.
func Replace(line string, args ...any) string {
	values := replacements(args...)
	if len(values) == 0 || !strings.Contains(line, ":") {
		return line
	}

	// longest names first so `:field_name` wins over `:field`
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) == len(names[j]) {
			return names[i] < names[j]
		}
		return len(names[i]) > len(names[j])
	})

	pairs := make([]string, 0, len(names)*6)
	for _, name := range names {
		value := values[name]
		pairs = append(pairs,
			":"+strings.ToUpper(name), strings.ToUpper(value),
			":"+upperFirst(name), upperFirst(value),
			":"+name, value,
		)
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

func replacements(args ...any) map[string]string {
	if len(args) == 0 {
		return nil
	}

	out := make(map[string]string)
	if len(args) == 1 {
		switch v := args[0].(type) {
		case map[string]any:
			for key, value := range v {
				out[key] = fmt.Sprint(value)
			}
			return out
		case map[string]string:
			for key, value := range v {
				out[key] = value
			}
			return out
		}
	}

	for i := 0; i+1 < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok || name == "" {
			continue
		}
		out[name] = fmt.Sprint(args[i+1])
	}
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
