package schema

import (
	"regexp"
	"strings"
)

var multipleSpaces = regexp.MustCompile(" +")

// CoerceToLowercase lowercases string values, passing others through.
func CoerceToLowercase(value any) any {
	if s, ok := value.(string); ok {
		return strings.ToLower(s)
	}
	return value
}

// StripWhitespace trims surrounding whitespace from string values.
func StripWhitespace(value any) any {
	if s, ok := value.(string); ok {
		return strings.Trim(s, " \t\n\r")
	}
	return value
}

// RemoveMultipleSpaces collapses runs of spaces inside string values.
func RemoveMultipleSpaces(value any) any {
	if s, ok := value.(string); ok && s != "" {
		return multipleSpaces.ReplaceAllString(s, " ")
	}
	return value
}

// IfEmptyNull maps empty values to nil so optional nodes fall back to their
// missing substitute.
func IfEmptyNull(value any) any {
	if isAbsent(value) {
		return nil
	}
	return value
}

// DedupeSequence removes duplicate entries from a sequence, keeping the
// first occurrence of each value.
func DedupeSequence(value any) any {
	items, ok := asSlice(value)
	if !ok {
		return value
	}
	seen := make(map[any]struct{}, len(items))
	out := make([]any, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// RemoveEmptyValues strips empty entries from a sequence.
func RemoveEmptyValues(value any) any {
	items, ok := asSlice(value)
	if !ok {
		return value
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if isAbsent(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = item
		}
		return out, true
	default:
		return nil, false
	}
}
