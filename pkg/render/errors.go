package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// ErrorMapping splits a validation error tree into field-level messages
// keyed by the dotted paths rendering uses, plus form-level messages for
// paths that no longer match a node.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapInvalid flattens an *Invalid against the schema. Messages whose path
// does not resolve to a schema node are demoted to form-level errors so
// they are not silently lost.
func MapInvalid(s *schema.Schema, invalid *schema.Invalid) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string]string)}
	if invalid == nil {
		return mapping
	}
	for path, message := range invalid.AsMap() {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if path == "" || !hasNode(s, path) {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		mapping.Fields[path] = message
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	return mapping
}

func hasNode(s *schema.Schema, path string) bool {
	if s == nil {
		return false
	}
	node := s.Node
	for _, segment := range strings.Split(path, ".") {
		node = node.Child(segment)
		if node == nil {
			return false
		}
	}
	return true
}
