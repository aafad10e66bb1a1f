package widgets

import (
	"github.com/goliatone/go-formkit/pkg/schema"
)

// SelectValue is a single (value, label) option for select-style widgets.
type SelectValue struct {
	Value string
	Label string
}

// OptGroup is a labelled group of select options.
type OptGroup struct {
	Label  string
	Values []SelectValue
}

// HiddenWidget renders a hidden input. CSRF tokens and upload-service
// config payloads round-trip through it.
type HiddenWidget struct{}

func (HiddenWidget) Name() string     { return "hidden" }
func (HiddenWidget) Structural() bool { return false }

func (HiddenWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	name := resolveTemplate(data, "forms.hidden", templatePrefix+"hidden.tmpl")
	return data.Templates.RenderTemplate(name, templateValues(node, cstruct, data))
}

func (HiddenWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// TextInputWidget renders a single-line text input.
type TextInputWidget struct {
	// Strip removes surrounding whitespace on deserialize. On by default
	// through NewTextInput.
	Strip bool

	// InputType overrides the input element type, e.g. "email" or "url".
	InputType string

	Placeholder string
}

// NewTextInput constructs the widget with stripping enabled.
func NewTextInput() TextInputWidget {
	return TextInputWidget{Strip: true}
}

func (TextInputWidget) Name() string     { return "text_input" }
func (TextInputWidget) Structural() bool { return false }

func (w TextInputWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	inputType := w.InputType
	if inputType == "" {
		inputType = "text"
	}
	values["input_type"] = inputType
	values["placeholder"] = w.Placeholder
	name := resolveTemplate(data, "forms.input", templatePrefix+"text_input.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (w TextInputWidget) Deserialize(pstruct any) any {
	if w.Strip {
		return stripString(pstruct)
	}
	if value, ok := firstString(pstruct); ok {
		return value
	}
	return pstruct
}

// TextAreaWidget renders a multi-line text area.
type TextAreaWidget struct {
	Rows  int
	Strip bool
}

func (TextAreaWidget) Name() string     { return "textarea" }
func (TextAreaWidget) Structural() bool { return false }

func (w TextAreaWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	rows := w.Rows
	if rows == 0 {
		rows = 4
	}
	values["rows"] = rows
	name := resolveTemplate(data, "forms.textarea", templatePrefix+"textarea.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (w TextAreaWidget) Deserialize(pstruct any) any {
	if w.Strip {
		return stripString(pstruct)
	}
	if value, ok := firstString(pstruct); ok {
		return value
	}
	return pstruct
}

// SelectWidget renders a single-value select control.
type SelectWidget struct {
	Values []SelectValue
}

func (SelectWidget) Name() string     { return "select" }
func (SelectWidget) Structural() bool { return false }

func (w SelectWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	values["values"] = w.Values
	name := resolveTemplate(data, "forms.select", templatePrefix+"select.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (SelectWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// OptGroupWidget renders a single-value select with grouped options.
type OptGroupWidget struct {
	Groups []OptGroup
}

func (OptGroupWidget) Name() string     { return "select_optgroup" }
func (OptGroupWidget) Structural() bool { return false }

func (w OptGroupWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	values["groups"] = w.Groups
	name := resolveTemplate(data, "forms.select", templatePrefix+"select_optgroup.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (OptGroupWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// MultiSelectWidget renders a multi-value select with grouped options.
type MultiSelectWidget struct {
	Groups []OptGroup
}

func (MultiSelectWidget) Name() string     { return "multi_select" }
func (MultiSelectWidget) Structural() bool { return false }

func (w MultiSelectWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	values["groups"] = w.Groups
	selected := map[string]bool{}
	switch v := cstruct.(type) {
	case []string:
		for _, item := range v {
			selected[item] = true
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				selected[s] = true
			}
		}
	case string:
		selected[v] = true
	}
	values["selected"] = selected
	name := resolveTemplate(data, "forms.multiselect", templatePrefix+"multi_select.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (MultiSelectWidget) Deserialize(pstruct any) any {
	switch v := pstruct.(type) {
	case []string, []any:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return pstruct
	}
}

// TypeaheadWidget renders a text input with an attached datalist so the
// browser offers completion over the configured values.
type TypeaheadWidget struct {
	Values []SelectValue
}

func (TypeaheadWidget) Name() string     { return "typeahead" }
func (TypeaheadWidget) Structural() bool { return false }

func (w TypeaheadWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	values["values"] = w.Values
	name := resolveTemplate(data, "forms.typeahead", templatePrefix+"typeahead.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (TypeaheadWidget) Deserialize(pstruct any) any { return stripString(pstruct) }
