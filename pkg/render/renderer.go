package render

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"net/http"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/transloadit"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Option customises the form renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *widgets.Registry
	widgetSet        map[string]widgets.Widget
	overrides        map[string]widgets.Widget
	theme            *theme.RendererConfig
	chrome           ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry injects a widget-matcher registry.
func WithRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithWidget registers a widget instance under its resolved name,
// replacing the built-in instance.
func WithWidget(name string, widget widgets.Widget) Option {
	return func(cfg *config) {
		if name == "" || widget == nil {
			return
		}
		if cfg.widgetSet == nil {
			cfg.widgetSet = make(map[string]widgets.Widget)
		}
		cfg.widgetSet[name] = widget
	}
}

// WithNodeWidget pins a widget instance to a dotted node path, bypassing
// registry resolution for that node.
func WithNodeWidget(path string, widget widgets.Widget) Option {
	return func(cfg *config) {
		if path == "" || widget == nil {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]widgets.Widget)
		}
		cfg.overrides[path] = widget
	}
}

// WithTheme passes a go-theme renderer configuration through to widget
// serialization (partial overrides) and form chrome (CSS vars).
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithChromeClasses overrides the chrome CSS classes.
func WithChromeClasses(chrome ChromeClasses) Option {
	return func(cfg *config) {
		cfg.chrome = chrome
	}
}

// FormRenderer walks a bound schema and renders it to HTML through the
// widget set and the pongo2 template bundle.
type FormRenderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *widgets.Registry
	widgetSet map[string]widgets.Widget
	overrides map[string]widgets.Widget
	theme     *theme.RendererConfig
	chrome    ChromeClasses
}

// New constructs a FormRenderer applying any provided options.
func New(options ...Option) (*FormRenderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("form renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = widgets.NewRegistry()
	}

	widgetSet := defaultWidgetSet()
	for name, widget := range cfg.widgetSet {
		widgetSet[name] = widget
	}

	return &FormRenderer{
		templates: renderer,
		registry:  registry,
		widgetSet: widgetSet,
		overrides: cfg.overrides,
		theme:     cfg.theme,
		chrome:    cfg.chrome.withDefaults(),
	}, nil
}

func defaultWidgetSet() map[string]widgets.Widget {
	return map[string]widgets.Widget{
		"hidden":          widgets.HiddenWidget{},
		"text_input":      widgets.NewTextInput(),
		"textarea":        widgets.TextAreaWidget{Strip: true},
		"markdown":        widgets.MarkdownWidget{},
		"select":          widgets.SelectWidget{},
		"select_optgroup": widgets.OptGroupWidget{},
		"multi_select":    widgets.MultiSelectWidget{},
		"typeahead":       widgets.TypeaheadWidget{},

		// Upload widgets read the signed config a bound node carries in
		// its metadata.
		"transloadit_config": transloadit.ConfigWidget{},
		"transloadit_image":  transloadit.ImageWidget{},
		"transloadit_upload": transloadit.UploadWidget{},
	}
}

// Templates exposes the configured template renderer so callers (e.g. the
// form view) can render page-level templates with the same engine.
func (r *FormRenderer) Templates() rendertemplate.TemplateRenderer {
	return r.templates
}

// WidgetFor resolves the widget instance rendering the node at path.
func (r *FormRenderer) WidgetFor(node *schema.Node, path string) widgets.Widget {
	if widget, ok := r.overrides[path]; ok {
		return widget
	}
	if name, ok := r.registry.Resolve(node); ok {
		if widget, ok := r.widgetSet[name]; ok {
			return widget
		}
	}
	return r.widgetSet["text_input"]
}

// RenderOptions describe per-request state for a render pass.
type RenderOptions struct {
	// Action is the form submission URL.
	Action string

	// Method defaults to POST. Verbs a browser cannot submit natively
	// (PUT/PATCH/DELETE) render as POST plus a hidden _method input.
	Method string

	CSSClass string

	// Values pre-populates controls using dotted field paths.
	Values map[string]any

	// Errors surfaces validation feedback produced by MapInvalid.
	Errors ErrorMapping

	// Hidden fields are emitted before the first widget.
	Hidden []HiddenField

	Buttons []widgets.Button
}

// Render walks the schema and produces the full form markup.
func (r *FormRenderer) Render(ctx context.Context, s *schema.Schema, opts RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.Node == nil {
		return "", fmt.Errorf("form renderer: schema is required")
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodPost
	}
	hidden := append([]HiddenField(nil), opts.Hidden...)
	submitMethod := method
	if method != http.MethodGet && method != http.MethodPost {
		submitMethod = http.MethodPost
		hidden = append(hidden, Hidden("_method", method))
	}

	var fields []string
	for _, child := range s.Children {
		markup, err := r.renderNode(child, child.Name, opts)
		if err != nil {
			return "", err
		}
		if markup != "" {
			fields = append(fields, markup)
		}
	}

	values := map[string]any{
		"action":        opts.Action,
		"method":        submitMethod,
		"css_class":     strings.TrimSpace(strings.Join([]string{r.chrome.Form, opts.CSSClass}, " ")),
		"hidden":        hidden,
		"fields":        fields,
		"buttons":       opts.Buttons,
		"form_errors":   opts.Errors.Form,
		"css_vars":      r.cssVars(),
		"actions_class": r.chrome.Actions,
	}

	return r.templates.RenderTemplate(templateName("form"), values)
}

func (r *FormRenderer) renderNode(node *schema.Node, path string, opts RenderOptions) (string, error) {
	// Mapping nodes with children render as nested fieldsets.
	if len(node.Children) > 0 {
		var inner []string
		for _, child := range node.Children {
			markup, err := r.renderNode(child, path+"."+child.Name, opts)
			if err != nil {
				return "", err
			}
			if markup != "" {
				inner = append(inner, markup)
			}
		}
		values := map[string]any{
			"label":  node.Label(),
			"fields": inner,
		}
		return r.templates.RenderTemplate(templateName("fieldset"), values)
	}

	widget := r.WidgetFor(node, path)
	data := widgets.RenderData{
		Templates: r.templates,
		Theme:     r.theme,
		Error:     opts.Errors.fieldError(path),
	}

	var value any
	if opts.Values != nil {
		value = lookupPath(opts.Values, path)
	}

	// Nested leaves submit under their dotted path so deserialization can
	// rebuild the mapping structure.
	if path != node.Name {
		renamed := node.Clone()
		renamed.Name = path
		node = renamed
	}

	control, err := widget.Serialize(node, value, data)
	if err != nil {
		return "", fmt.Errorf("form renderer: serialize %q: %w", path, err)
	}
	if widget.Structural() || widget.Name() == "hidden" || node.Meta("hidden") == "true" {
		return control, nil
	}
	return r.buildFieldMarkup(node, path, control, data.Error), nil
}

// buildFieldMarkup wraps a rendered control in the standard field chrome.
func (r *FormRenderer) buildFieldMarkup(node *schema.Node, path, control, fieldError string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="`)
	b.WriteString(r.chrome.Field)
	if fieldError != "" {
		b.WriteString(" has-error")
	}
	if cls := node.Meta("field_class"); cls != "" {
		b.WriteByte(' ')
		b.WriteString(html.EscapeString(cls))
	}
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(path))
	b.WriteString("\">\n")

	b.WriteString(`<label class="`)
	b.WriteString(r.chrome.Label)
	b.WriteString(`" for="fk-`)
	b.WriteString(html.EscapeString(strings.ReplaceAll(node.Name, ".", "-")))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(node.Label()))
	if node.Required() {
		b.WriteString(`<span class="required">*</span>`)
	}
	b.WriteString("</label>\n")

	b.WriteString(control)

	if fieldError != "" {
		b.WriteString("\n" + `<p class="`)
		b.WriteString(r.chrome.Error)
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(fieldError))
		b.WriteString("</p>")
	}
	b.WriteString("\n</div>")
	return b.String()
}

func (r *FormRenderer) cssVars() map[string]string {
	if r.theme == nil {
		return nil
	}
	return r.theme.CSSVars
}

func (m ErrorMapping) fieldError(path string) string {
	if m.Fields == nil {
		return ""
	}
	return m.Fields[path]
}

// lookupPath resolves dotted paths against nested value maps.
func lookupPath(values map[string]any, path string) any {
	segments := strings.Split(path, ".")
	var current any = values
	for _, segment := range segments {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = asMap[segment]
	}
	return current
}

func templateName(base string) string {
	return "templates/" + base + ".tmpl"
}
