package schema

import "strings"

// Type is the simplified enum for form-friendly node kinds.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Preparer normalises a deserialized value before validation runs.
type Preparer func(value any) any

// Validator checks a prepared value and returns an *Invalid on failure.
type Validator func(node *Node, value any) error

// Node models a single typed field definition. A node with children acts
// as a mapping; serialisation helpers and renderers consume nodes directly.
type Node struct {
	Name        string
	Type        Type
	Title       string
	Description string

	// Default pre-populates the rendered control when no cstruct value is
	// present.
	Default any

	// Missing substitutes for an absent submission value. Leave nil to make
	// the node required; use Null to accept absence and produce nil.
	Missing any

	// Widget names the widget that should render this node. Empty defers the
	// choice to the widget registry.
	Widget string

	Preparers  []Preparer
	Validators []Validator
	Deferred   []DeferredFunc

	Children []*Node

	// Metadata carries renderer hints (css classes, template keys,
	// allow_remove flags) keyed by convention.
	Metadata map[string]string
}

// Null marks a node as optional, deserializing absence to nil.
type nullType struct{}

// Null is the sentinel assigned to Node.Missing for optional nodes that
// should yield nil rather than an error when absent.
var Null = nullType{}

// Drop is the sentinel assigned to Node.Missing for optional nodes whose
// absent values are omitted from the appstruct entirely.
var Drop = struct{ drop bool }{drop: true}

// Required reports whether the node has no missing substitute.
func (n *Node) Required() bool {
	return n.Missing == nil
}

// Child returns the first child with the given name.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// SetMeta sets a metadata hint, allocating the map on first use.
func (n *Node) SetMeta(key, value string) {
	if n.Metadata == nil {
		n.Metadata = make(map[string]string)
	}
	n.Metadata[key] = value
}

// Meta fetches a metadata hint, returning "" when unset.
func (n *Node) Meta(key string) string {
	if n.Metadata == nil {
		return ""
	}
	return n.Metadata[key]
}

// Label returns the title, falling back to a capitalised name.
func (n *Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	if n.Name == "" {
		return ""
	}
	return strings.ToUpper(n.Name[:1]) + n.Name[1:]
}

// Clone deep-copies the node and its children so bound schemas never share
// state with their definition.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Preparers = append([]Preparer(nil), n.Preparers...)
	clone.Validators = append([]Validator(nil), n.Validators...)
	clone.Deferred = append([]DeferredFunc(nil), n.Deferred...)
	if n.Metadata != nil {
		clone.Metadata = make(map[string]string, len(n.Metadata))
		for key, value := range n.Metadata {
			clone.Metadata[key] = value
		}
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for idx, child := range n.Children {
			clone.Children[idx] = child.Clone()
		}
	}
	return &clone
}

// Schema is a root mapping node plus ordering configuration.
type Schema struct {
	*Node

	// FieldOrder corrects top level field positions by name, e.g.
	// {"description": -1} appends, {"name": 0} inserts first. Applied once
	// at construction.
	FieldOrder map[string]int
}

// New constructs a schema from the provided children, applying field order.
func New(name string, fieldOrder map[string]int, children ...*Node) *Schema {
	s := &Schema{
		Node: &Node{
			Name:     name,
			Type:     TypeObject,
			Children: children,
		},
		FieldOrder: fieldOrder,
	}
	s.Node.Children = applyFieldOrder(s.Node.Children, fieldOrder)
	return s
}

// Clone deep-copies the schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	order := make(map[string]int, len(s.FieldOrder))
	for name, idx := range s.FieldOrder {
		order[name] = idx
	}
	return &Schema{Node: s.Node.Clone(), FieldOrder: order}
}
