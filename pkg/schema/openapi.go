package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// NodesFromDocument loads an OpenAPI payload and derives schema nodes from
// the request body of the named operation. JSON and form media types are
// honoured, matching the operations a form front-end can submit to.
func NodesFromDocument(ctx context.Context, raw []byte, operationID string) ([]*Node, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: openapi document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if spec.Paths == nil {
		return nil, errors.New("schema: openapi document does not contain any paths")
	}

	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			return NodesFromOperation(operation)
		}
	}
	return nil, fmt.Errorf("schema: operation %q not found", operationID)
}

// NodesFromOperation derives nodes from an operation's request body schema.
func NodesFromOperation(operation *openapi3.Operation) ([]*Node, error) {
	if operation == nil || operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return NodesFromSchemaRef(mt.Schema), nil
		}
	}
	return nil, nil
}

// NodesFromSchemaRef converts an object schema's properties into nodes.
// Property order is alphabetical since the OpenAPI map carries no order of
// its own; callers reorder through Schema.FieldOrder.
func NodesFromSchemaRef(ref *openapi3.SchemaRef) []*Node {
	if ref == nil || ref.Value == nil {
		return nil
	}
	value := ref.Value

	required := make(map[string]bool, len(value.Required))
	for _, name := range value.Required {
		required[name] = true
	}

	names := make([]string, 0, len(value.Properties))
	for name := range value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make([]*Node, 0, len(names))
	for _, name := range names {
		property := value.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		nodes = append(nodes, nodeFromProperty(name, property.Value, required[name]))
	}
	return nodes
}

func nodeFromProperty(name string, property *openapi3.Schema, required bool) *Node {
	node := &Node{
		Name:        name,
		Type:        typeFromOpenAPI(property.Type),
		Title:       strings.TrimSpace(property.Title),
		Description: strings.TrimSpace(property.Description),
		Default:     property.Default,
	}
	if !required {
		node.Missing = Null
	}
	if property.Format != "" {
		node.SetMeta("format", property.Format)
	}
	if len(property.Enum) > 0 {
		node.Widget = "select"
	}
	if node.Type == TypeObject && len(property.Properties) > 0 {
		node.Children = NodesFromSchemaRef(openapi3.NewSchemaRef("", property))
	}
	return node
}

func typeFromOpenAPI(types *openapi3.Types) Type {
	switch {
	case types == nil:
		return TypeString
	case types.Is(openapi3.TypeInteger):
		return TypeInteger
	case types.Is(openapi3.TypeNumber):
		return TypeNumber
	case types.Is(openapi3.TypeBoolean):
		return TypeBoolean
	case types.Is(openapi3.TypeArray):
		return TypeArray
	case types.Is(openapi3.TypeObject):
		return TypeObject
	default:
		return TypeString
	}
}
