package formview

import (
	"net/http"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// CStruct rebuilds the nested submission structure from flat form data.
// Leaf values pass through the widget that rendered them, so e.g. text
// inputs strip whitespace and multi-selects collect every value.
func CStruct(r *http.Request, s *schema.Schema, renderer *render.FormRenderer) map[string]any {
	if s == nil || s.Node == nil {
		return nil
	}
	if r.Form == nil {
		_ = r.ParseForm()
	}

	out := make(map[string]any)
	for _, child := range s.Children {
		collectNode(r, renderer, child, child.Name, out)
	}
	return out
}

func collectNode(r *http.Request, renderer *render.FormRenderer, node *schema.Node, path string, out map[string]any) {
	if len(node.Children) > 0 {
		nested := make(map[string]any)
		for _, child := range node.Children {
			collectNode(r, renderer, child, path+"."+child.Name, nested)
		}
		if len(nested) > 0 {
			out[node.Name] = nested
		}
		return
	}

	raw, ok := submittedValues(r, path)
	if !ok {
		return
	}

	widget := renderer.WidgetFor(node, path)
	if widget.Structural() {
		return
	}
	if value := widget.Deserialize(raw); value != nil {
		out[node.Name] = value
	}
}

func submittedValues(r *http.Request, path string) (any, bool) {
	values, ok := r.Form[path]
	if !ok {
		return nil, false
	}
	if len(values) == 1 {
		return values[0], true
	}
	return values, true
}
