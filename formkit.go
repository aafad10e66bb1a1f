// Package formkit builds, renders, and validates HTML form schemas:
// CSRF-protected schema definitions, widget-based rendering, upload
// service integration, and an HTTP form view tying them together.
package formkit

import (
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/formview"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Schema is the node-tree form definition; see pkg/schema.
type Schema = schema.Schema

// Node is a single schema field.
type Node = schema.Node

// Invalid is the structured validation error tree.
type Invalid = schema.Invalid

// BindContext carries request state into deferred node resolution.
type BindContext = schema.BindContext

// RenderOptions describe per-request render state: values, errors,
// hidden fields and buttons.
type RenderOptions = render.RenderOptions

// FormRenderer renders a bound schema to HTML.
type FormRenderer = render.FormRenderer

// Button is a single form action.
type Button = widgets.Button

// New builds a plain schema from children; see schema.New for field
// ordering.
func New(name string, fieldOrder map[string]int, children ...*Node) *Schema {
	return schema.New(name, fieldOrder, children...)
}

// NewCSRFSchema builds a schema whose first child is the hidden token
// node.
func NewCSRFSchema(name string, fieldOrder map[string]int, children ...*Node) *Schema {
	return schema.NewCSRFSchema(name, fieldOrder, children...)
}

// NewRenderer constructs a form renderer using the embedded template
// bundle unless overridden.
func NewRenderer(options ...render.Option) (*FormRenderer, error) {
	return render.New(options...)
}

// NewFormView constructs the render/validate/redisplay HTTP helper over
// a schema.
func NewFormView(s *Schema, renderer *FormRenderer, options ...formview.Option) (*formview.FormView, error) {
	return formview.New(formview.Wrap(s), renderer, options...)
}

// EmbeddedTemplates exposes the built-in widget templates so callers can
// reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}

// Buttons coerces strings and Button values into form buttons.
func Buttons(items ...any) []Button {
	return widgets.Buttons(items...)
}

// SafeMethod reports whether a request method skips CSRF validation.
func SafeMethod(method string) bool {
	return schema.SafeMethod(method)
}
