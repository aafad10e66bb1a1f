package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the YAML shape for declaring a schema without code. Field
// order entries use the same index semantics as Schema.FieldOrder.
type Document struct {
	Name       string          `yaml:"name"`
	CSRF       bool            `yaml:"csrf"`
	FieldOrder map[string]int  `yaml:"field_order"`
	Fields     []DocumentField `yaml:"fields"`
}

// DocumentField declares a single node.
type DocumentField struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Required    bool              `yaml:"required"`
	Default     any               `yaml:"default"`
	Widget      string            `yaml:"widget"`
	Metadata    map[string]string `yaml:"metadata"`
	Fields      []DocumentField   `yaml:"fields"`
}

// LoadYAML parses a schema document and builds the schema it declares.
func LoadYAML(data []byte) (*Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds a schema from a parsed document.
func FromDocument(doc Document) (*Schema, error) {
	children := make([]*Node, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		node, err := nodeFromDocumentField(field)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	if doc.CSRF {
		return NewCSRFSchema(doc.Name, doc.FieldOrder, children...), nil
	}
	return New(doc.Name, doc.FieldOrder, children...), nil
}

func nodeFromDocumentField(field DocumentField) (*Node, error) {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return nil, fmt.Errorf("schema: document field is missing a name")
	}

	nodeType, err := typeFromDocument(field.Type)
	if err != nil {
		return nil, fmt.Errorf("schema: field %q: %w", name, err)
	}

	node := &Node{
		Name:        name,
		Type:        nodeType,
		Title:       strings.TrimSpace(field.Title),
		Description: strings.TrimSpace(field.Description),
		Default:     field.Default,
		Widget:      strings.TrimSpace(field.Widget),
	}
	if !field.Required {
		node.Missing = Null
	}
	for key, value := range field.Metadata {
		node.SetMeta(key, value)
	}
	for _, sub := range field.Fields {
		child, err := nodeFromDocumentField(sub)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func typeFromDocument(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "string":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "number", "float":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "array":
		return TypeArray, nil
	case "object", "mapping":
		return TypeObject, nil
	default:
		return "", fmt.Errorf("unknown type %q", raw)
	}
}
