package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Button describes a single form action.
type Button struct {
	Name     string
	Title    string
	Type     string
	CSSClass string
}

// NewButton builds a submit button from a bare name, capitalising the
// title.
func NewButton(name string) Button {
	title := name
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return Button{Name: name, Title: title, Type: "submit"}
}

// Buttons coerces a mix of strings and Button values into buttons.
func Buttons(items ...any) []Button {
	out := make([]Button, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case Button:
			out = append(out, v)
		case string:
			out = append(out, NewButton(v))
		}
	}
	return out
}

// ActionsWidget renders a block of form actions, useful to insert a save
// button at multiple points in a long form. It is structural: it never
// deserializes a value.
type ActionsWidget struct {
	Buttons []Button
}

// NewActions coerces strings to button instances.
func NewActions(buttons ...any) ActionsWidget {
	return ActionsWidget{Buttons: Buttons(buttons...)}
}

func (ActionsWidget) Name() string     { return "actions" }
func (ActionsWidget) Structural() bool { return true }

func (w ActionsWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	values["buttons"] = w.Buttons
	name := resolveTemplate(data, "forms.actions", templatePrefix+"actions.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (ActionsWidget) Deserialize(pstruct any) any { return nil }
