package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Deserialize walks the schema children against the submitted cstruct and
// returns the typed appstruct. Validation failures aggregate into a single
// *Invalid tree so callers surface every failing field at once.
func (s *Schema) Deserialize(cstruct map[string]any) (map[string]any, error) {
	return deserializeMapping(s.Node, cstruct)
}

func deserializeMapping(node *Node, cstruct map[string]any) (map[string]any, error) {
	appstruct := make(map[string]any, len(node.Children))
	errs := &Invalid{Node: node}

	for _, child := range node.Children {
		var pstruct any
		if cstruct != nil {
			pstruct = cstruct[child.Name]
		}

		value, err := deserializeNode(child, pstruct)
		if err != nil {
			if invalid, ok := AsInvalid(err); ok {
				errs.Add(child.Name, invalid)
				continue
			}
			return nil, err
		}
		if value == Drop {
			continue
		}
		appstruct[child.Name] = value
	}

	if !errs.Empty() {
		return nil, errs
	}
	return appstruct, nil
}

func deserializeNode(node *Node, pstruct any) (any, error) {
	if len(node.Children) > 0 {
		sub, ok := pstruct.(map[string]any)
		if !ok || len(sub) == 0 {
			if node.Required() {
				return nil, NewInvalid(node, "required")
			}
			return missingValue(node), nil
		}
		return deserializeMapping(node, sub)
	}

	if isAbsent(pstruct) {
		if node.Required() {
			return nil, NewInvalid(node, "required")
		}
		return missingValue(node), nil
	}

	value := pstruct
	for _, prepare := range node.Preparers {
		value = prepare(value)
	}
	// A preparer may have emptied the value.
	if isAbsent(value) {
		if node.Required() {
			return nil, NewInvalid(node, "required")
		}
		return missingValue(node), nil
	}

	value, err := coerce(node, value)
	if err != nil {
		return nil, err
	}

	for _, validate := range node.Validators {
		if err := validate(node, value); err != nil {
			if invalid, ok := AsInvalid(err); ok {
				return nil, invalid
			}
			return nil, NewInvalid(node, "%s", err.Error())
		}
	}
	return value, nil
}

func missingValue(node *Node) any {
	switch node.Missing {
	case Null:
		return nil
	case Drop:
		return Drop
	default:
		return node.Missing
	}
}

func isAbsent(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// coerce converts stringly submission values into the node's declared type.
func coerce(node *Node, value any) (any, error) {
	switch node.Type {
	case TypeInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, NewInvalid(node, "%q is not a number", v)
			}
			return parsed, nil
		}
	case TypeNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, NewInvalid(node, "%q is not a number", v)
			}
			return parsed, nil
		}
	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "on", "1", "yes":
				return true, nil
			case "false", "off", "0", "no", "":
				return false, nil
			}
			return nil, NewInvalid(node, "%q is not a boolean", v)
		}
	case TypeArray:
		switch v := value.(type) {
		case []any:
			return v, nil
		case []string:
			out := make([]any, len(v))
			for idx, item := range v {
				out[idx] = item
			}
			return out, nil
		default:
			return []any{v}, nil
		}
	case TypeString, "":
		switch v := value.(type) {
		case string:
			return v, nil
		case []string:
			// Multi-valued submissions for scalar nodes keep the first value.
			if len(v) > 0 {
				return v[0], nil
			}
			return "", nil
		default:
			return fmt.Sprint(v), nil
		}
	}
	return value, nil
}
