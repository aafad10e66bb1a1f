package widgets

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// RenderData carries the rendering collaborators a widget needs when
// serializing: the template engine, optional theme configuration, and the
// field error surfaced inline.
type RenderData struct {
	Templates rendertemplate.TemplateRenderer
	Theme     *theme.RendererConfig
	Error     string
}

// Widget is the renderable/deserializable form-field adapter. Serialize
// turns a node plus cstruct value into markup; Deserialize turns the
// submitted pstruct into the cstruct value the schema consumes. Structural
// widgets render chrome only and never contribute to the appstruct.
type Widget interface {
	Name() string
	Structural() bool
	Serialize(node *schema.Node, cstruct any, data RenderData) (string, error)
	Deserialize(pstruct any) any
}

const templatePrefix = "templates/"

// resolveTemplate honours theme partial overrides before falling back to
// the built-in template for a widget.
func resolveTemplate(data RenderData, partialKey, fallback string) string {
	if data.Theme != nil && data.Theme.Partials != nil {
		if candidate := strings.TrimSpace(data.Theme.Partials[partialKey]); candidate != "" {
			return candidate
		}
	}
	return fallback
}

// templateValues assembles the base context every widget template receives.
func templateValues(node *schema.Node, cstruct any, data RenderData) map[string]any {
	value := cstruct
	if value == nil {
		value = node.Default
	}
	if value == nil {
		value = ""
	}
	return map[string]any{
		"name":        node.Name,
		"oid":         controlID(node.Name),
		"label":       node.Label(),
		"description": node.Description,
		"required":    node.Required(),
		"value":       value,
		"error":       data.Error,
		"css_class":   node.Meta("css_class"),
	}
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fk-" + strings.ReplaceAll(trimmed, ".", "-")
}

// stripString trims surrounding whitespace from string pstructs, the
// default text-input deserialize behaviour.
func stripString(pstruct any) any {
	switch v := pstruct.(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		if len(v) == 0 {
			return nil
		}
		return strings.TrimSpace(v[0])
	default:
		return pstruct
	}
}

func firstString(pstruct any) (string, bool) {
	switch v := pstruct.(type) {
	case string:
		return v, true
	case []string:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}
