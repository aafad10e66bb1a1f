package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Invalid is the structured validation error raised while deserializing.
// Leaf entries carry a message; mapping entries aggregate child errors into
// a tree addressable by dotted paths.
type Invalid struct {
	Node     *Node
	Message  string
	Children map[string]*Invalid
}

// NewInvalid constructs a leaf error for a node.
func NewInvalid(node *Node, format string, args ...any) *Invalid {
	return &Invalid{Node: node, Message: fmt.Sprintf(format, args...)}
}

// Add attaches a child error under the given name.
func (e *Invalid) Add(name string, child *Invalid) {
	if child == nil {
		return
	}
	if e.Children == nil {
		e.Children = make(map[string]*Invalid)
	}
	e.Children[name] = child
}

// Empty reports whether the error has neither a message nor children.
func (e *Invalid) Empty() bool {
	return e == nil || (e.Message == "" && len(e.Children) == 0)
}

// AsMap flattens the tree into dotted-path keyed messages, the shape
// templates and JSON views consume.
func (e *Invalid) AsMap() map[string]string {
	out := make(map[string]string)
	e.flatten("", out)
	return out
}

func (e *Invalid) flatten(prefix string, out map[string]string) {
	if e == nil {
		return
	}
	if e.Message != "" {
		key := prefix
		if key == "" && e.Node != nil {
			key = e.Node.Name
		}
		out[key] = e.Message
	}
	for name, child := range e.Children {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		child.flatten(path, out)
	}
}

func (e *Invalid) Error() string {
	flat := e.AsMap()
	if len(flat) == 0 {
		return "invalid"
	}
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			parts = append(parts, flat[key])
			continue
		}
		parts = append(parts, key+": "+flat[key])
	}
	return strings.Join(parts, "; ")
}

// AsInvalid unwraps err into an *Invalid when possible.
func AsInvalid(err error) (*Invalid, bool) {
	if err == nil {
		return nil, false
	}
	invalid, ok := err.(*Invalid)
	return invalid, ok
}
