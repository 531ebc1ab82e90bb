package i18n

import (
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// SelectChoice picks the segment of a `|` separated line that matches count.
//
// Segments may carry explicit conditions, `{n}` for an exact count or
// `[min,max]` for an inclusive range where `*` leaves a bound open. When no
// explicit condition matches, the CLDR cardinal plural form of the locale
// selects the segment.
func SelectChoice(line string, count int, locale string) string {
	segments := strings.Split(line, "|")

	for _, segment := range segments {
		if value, ok := matchExplicit(segment, count); ok {
			return value
		}
	}

	for i := range segments {
		segments[i] = stripCondition(segments[i])
	}

	if len(segments) == 1 {
		return segments[0]
	}

	idx := pluralIndex(locale, count, len(segments))
	return segments[idx]
}

func matchExplicit(segment string, count int) (string, bool) {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return "", false
	}

	switch trimmed[0] {
	case '{':
		end := strings.IndexByte(trimmed, '}')
		if end < 0 {
			return "", false
		}
		for _, raw := range strings.Split(trimmed[1:end], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err == nil && n == count {
				return strings.TrimSpace(trimmed[end+1:]), true
			}
		}
	case '[', ']':
		end := strings.IndexAny(trimmed[1:], "[]")
		if end < 0 {
			return "", false
		}
		end++
		bounds := strings.SplitN(trimmed[1:end], ",", 2)
		if len(bounds) != 2 {
			return "", false
		}
		if inBound(bounds[0], count, true) && inBound(bounds[1], count, false) {
			return strings.TrimSpace(trimmed[end+1:]), true
		}
	}
	return "", false
}

func inBound(raw string, count int, lower bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "*" {
		return true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	if lower {
		return count >= n
	}
	return count <= n
}

func stripCondition(segment string) string {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return trimmed
	}
	switch trimmed[0] {
	case '{':
		if end := strings.IndexByte(trimmed, '}'); end >= 0 {
			return strings.TrimSpace(trimmed[end+1:])
		}
	case '[', ']':
		if end := strings.IndexAny(trimmed[1:], "[]"); end >= 0 {
			return strings.TrimSpace(trimmed[end+2:])
		}
	}
	return trimmed
}

func pluralIndex(locale string, count, segments int) int {
	if count < 0 {
		count = -count
	}

	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		tag = parsed
	}

	form := plural.Cardinal.MatchPlural(tag, count, 0, 0, 0, 0)

	idx := segments - 1
	switch form {
	case plural.One:
		idx = 0
	case plural.Two, plural.Few:
		idx = 1
	case plural.Zero:
		if segments > 2 {
			idx = 0
		}
	}
	if idx >= segments {
		idx = segments - 1
	}
	return idx
}
