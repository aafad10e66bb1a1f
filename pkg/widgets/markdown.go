package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// MarkdownWidget renders a textarea wired up for a markdown editor.
type MarkdownWidget struct {
	Rows int
}

func (MarkdownWidget) Name() string     { return "markdown" }
func (MarkdownWidget) Structural() bool { return false }

func (w MarkdownWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	values := templateValues(node, cstruct, data)
	rows := w.Rows
	if rows == 0 {
		rows = 8
	}
	values["rows"] = rows
	name := resolveTemplate(data, "forms.markdown", templatePrefix+"markdown.tmpl")
	return data.Templates.RenderTemplate(name, values)
}

func (MarkdownWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// MarkdownPreparer loses the enclosing <p></p> tag and the encoded
// character returns that rich-text editors leave behind.
func MarkdownPreparer(value any) any {
	raw, ok := value.(string)
	if !ok || raw == "" {
		return value
	}
	raw = strings.ReplaceAll(raw, "&#13;", "\r\n")
	raw = strings.ReplaceAll(raw, "\n\n", "\n")
	raw = strings.TrimPrefix(raw, "<p>")
	raw = strings.TrimSuffix(raw, "</p>")
	return raw
}
