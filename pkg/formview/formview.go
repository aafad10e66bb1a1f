// Package formview orchestrates the render/validate/redisplay cycle of a
// form-backed HTTP endpoint: bind the schema to the request, validate
// submissions on the configured methods, and hand the outcome to hooks.
package formview

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/transloadit"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Schema is the form contract a view drives: bind to a request, expose
// the node tree for rendering, deserialize a submission.
type Schema interface {
	Bind(*schema.BindContext) Schema
	Tree() *schema.Schema
	Deserialize(map[string]any) (map[string]any, error)
}

type basicSchema struct {
	*schema.Schema
}

// Wrap adapts a plain schema to the view contract.
func Wrap(s *schema.Schema) Schema {
	return basicSchema{Schema: s}
}

func (b basicSchema) Bind(bind *schema.BindContext) Schema {
	return basicSchema{Schema: b.Schema.Bind(bind)}
}

func (b basicSchema) Tree() *schema.Schema { return b.Schema }

type uploadSchema struct {
	*transloadit.UploadSchema
}

// WrapUpload adapts an upload schema to the view contract.
func WrapUpload(s *transloadit.UploadSchema) Schema {
	return uploadSchema{UploadSchema: s}
}

func (u uploadSchema) Bind(bind *schema.BindContext) Schema {
	return uploadSchema{UploadSchema: u.UploadSchema.Bind(bind)}
}

func (u uploadSchema) Tree() *schema.Schema { return u.UploadSchema.Schema }

// SessionFunc fetches the token session for a request.
type SessionFunc func(*http.Request) schema.TokenSession

// Hook signatures. Success and Failure report handled=true when they
// wrote the response themselves (e.g. a redirect); otherwise the view
// falls through to rendering the form.
type (
	PrepareHook  func(*http.Request, *render.RenderOptions)
	SuccessHook  func(http.ResponseWriter, *http.Request, map[string]any) (handled bool)
	FailureHook  func(http.ResponseWriter, *http.Request, *schema.Invalid) (handled bool)
	CompleteHook func(*http.Request, *Result)
)

// Section is one top-level form section, e.g. for a table of contents.
type Section struct {
	Name  string
	Title string
}

// Result carries the outcome of a request through the complete hook and
// out to the caller's page template.
type Result struct {
	FormName  string
	Sections  []Section
	Appstruct map[string]any
	Invalid   *schema.Invalid

	// Form holds the rendered markup unless lazy rendering is on, in
	// which case callers invoke RenderForm themselves (keeping the
	// markup cacheable).
	Form       string
	RenderForm func() (string, error)

	// Vars is free space for hooks to pass values to the template.
	Vars map[string]any
}

// Option configures a FormView.
type Option func(*FormView)

// WithAction sets the form submission URL. Defaults to the request path.
func WithAction(action string) Option {
	return func(v *FormView) { v.action = action }
}

// WithMethod sets the form method. Defaults to POST.
func WithMethod(method string) Option {
	return func(v *FormView) { v.method = strings.ToUpper(strings.TrimSpace(method)) }
}

// WithButtons sets the form buttons from strings or widgets.Button
// values. Defaults to a single save button.
func WithButtons(buttons ...any) Option {
	return func(v *FormView) { v.buttons = widgets.Buttons(buttons...) }
}

// WithEntityName sets the name used to derive the form title, e.g.
// "Create new Article" or "Edit Article" depending on the first button.
func WithEntityName(name string) Option {
	return func(v *FormView) { v.entityName = name }
}

// WithFormName overrides the derived form title entirely.
func WithFormName(name string) Option {
	return func(v *FormView) { v.formName = name }
}

// WithDefaultValues pre-populates the form when no submission is being
// redisplayed.
func WithDefaultValues(values map[string]any) Option {
	return func(v *FormView) { v.defaultValues = values }
}

// WithValidateMethods replaces the methods that trigger validation.
func WithValidateMethods(methods ...string) Option {
	return func(v *FormView) {
		v.validateMethods = make(map[string]bool, len(methods))
		for _, method := range methods {
			v.validateMethods[strings.ToUpper(method)] = true
		}
	}
}

// WithIgnoreActions replaces the submitted button names that skip
// validation, e.g. cancel.
func WithIgnoreActions(actions ...string) Option {
	return func(v *FormView) { v.ignoreActions = actions }
}

// WithIgnoreSections replaces the top-level children left out of the
// section listing.
func WithIgnoreSections(names ...string) Option {
	return func(v *FormView) { v.ignoreSections = names }
}

// WithLazyRender leaves form markup unrendered; callers invoke
// Result.RenderForm, typically behind a cache.
func WithLazyRender() Option {
	return func(v *FormView) { v.lazyRender = true }
}

// WithSessions supplies the per-request token session lookup.
func WithSessions(sessions SessionFunc) Option {
	return func(v *FormView) { v.sessions = sessions }
}

// WithBindVars supplies extra bind variables per request.
func WithBindVars(vars func(*http.Request) map[string]any) Option {
	return func(v *FormView) { v.bindVars = vars }
}

// WithPrepare installs the pre-render hook.
func WithPrepare(hook PrepareHook) Option {
	return func(v *FormView) { v.prepare = hook }
}

// WithSuccess installs the validated-submission hook.
func WithSuccess(hook SuccessHook) Option {
	return func(v *FormView) { v.success = hook }
}

// WithFailure installs the validation-failure hook.
func WithFailure(hook FailureHook) Option {
	return func(v *FormView) { v.failure = hook }
}

// WithComplete installs the final hook, run on every request.
func WithComplete(hook CompleteHook) Option {
	return func(v *FormView) { v.complete = hook }
}

// WithLogger overrides the view logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *FormView) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// FormView renders a schema-backed form and validates submissions.
type FormView struct {
	schema   Schema
	renderer *render.FormRenderer

	action        string
	method        string
	buttons       []widgets.Button
	entityName    string
	formName      string
	defaultValues map[string]any

	validateMethods map[string]bool
	ignoreActions   []string
	ignoreSections  []string
	lazyRender      bool

	sessions SessionFunc
	bindVars func(*http.Request) map[string]any

	prepare  PrepareHook
	success  SuccessHook
	failure  FailureHook
	complete CompleteHook

	logger *slog.Logger
}

// New constructs a view over the schema and renderer.
func New(s Schema, renderer *render.FormRenderer, options ...Option) (*FormView, error) {
	if s == nil {
		return nil, fmt.Errorf("formview: schema is required")
	}
	if renderer == nil {
		var err error
		renderer, err = render.New()
		if err != nil {
			return nil, err
		}
	}

	view := &FormView{
		schema:          s,
		renderer:        renderer,
		method:          http.MethodPost,
		buttons:         widgets.Buttons("save"),
		validateMethods: map[string]bool{http.MethodPost: true},
		ignoreActions:   []string{"cancel"},
		ignoreSections:  []string{schema.CSRFFieldName, transloadit.FieldName},
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(view)
		}
	}
	return view, nil
}

// FormName derives the title shown above the form: "Create new X" when
// the first button is create, "Edit X" otherwise.
func (v *FormView) FormName() string {
	if v.formName != "" {
		return v.formName
	}
	name := v.entityName
	if name == "" {
		name = v.schema.Tree().Label()
	}
	action := "Edit"
	if len(v.buttons) > 0 && strings.EqualFold(v.buttons[0].Name, "create") {
		action = "Create new"
	}
	return action + " " + name
}

// Sections lists the top-level form sections, skipping ignored names.
func (v *FormView) Sections(bound Schema) []Section {
	ignored := make(map[string]bool, len(v.ignoreSections))
	for _, name := range v.ignoreSections {
		ignored[name] = true
	}

	var sections []Section
	for _, child := range bound.Tree().Children {
		if ignored[child.Name] {
			continue
		}
		sections = append(sections, Section{Name: child.Name, Title: child.Label()})
	}
	return sections
}

// Handle runs the full cycle and returns the Result for the caller's
// page template. It returns nil when a hook wrote the response itself.
func (v *FormView) Handle(w http.ResponseWriter, r *http.Request) (*Result, error) {
	bound := v.bind(r)

	appstruct, invalid, validated, err := v.validate(r, bound)
	if err != nil {
		return nil, err
	}

	if invalid != nil {
		handled := false
		if v.failure != nil {
			handled = v.failure(w, r, invalid)
		}
		if handled {
			return nil, nil
		}
		w.WriteHeader(http.StatusBadRequest)
	} else if validated {
		if v.success != nil && v.success(w, r, appstruct) {
			return nil, nil
		}
	}

	result := &Result{
		FormName:  v.FormName(),
		Sections:  v.Sections(bound),
		Appstruct: appstruct,
		Invalid:   invalid,
		Vars:      make(map[string]any),
	}
	result.RenderForm = v.renderFunc(r, bound, appstruct, invalid)

	if !v.lazyRender {
		markup, err := result.RenderForm()
		if err != nil {
			return nil, err
		}
		result.Form = markup
	}

	if v.complete != nil {
		v.complete(r, result)
	}
	return result, nil
}

func (v *FormView) bind(r *http.Request) Schema {
	bind := &schema.BindContext{Request: r}
	if v.sessions != nil {
		bind.Session = v.sessions(r)
	}
	if v.bindVars != nil {
		bind.Vars = v.bindVars(r)
	}
	return v.schema.Bind(bind)
}

// validate deserializes the submission when the request method calls for
// it and no ignored action was submitted. validated reports whether
// deserialization ran.
func (v *FormView) validate(r *http.Request, bound Schema) (appstruct map[string]any, invalid *schema.Invalid, validated bool, err error) {
	if !v.validateMethods[r.Method] {
		return nil, nil, false, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, nil, false, fmt.Errorf("formview: parse form: %w", err)
	}
	for _, action := range v.ignoreActions {
		if _, ok := r.Form[action]; ok {
			return nil, nil, false, nil
		}
	}

	cstruct := CStruct(r, bound.Tree(), v.renderer)
	appstruct, derr := bound.Deserialize(cstruct)
	if derr != nil {
		inv, ok := schema.AsInvalid(derr)
		if !ok {
			return nil, nil, true, derr
		}
		v.logger.Debug("formview: validation failed", "form", v.schema.Tree().Name, "errors", inv.AsMap())
		return nil, inv, true, nil
	}
	return appstruct, nil, true, nil
}

func (v *FormView) renderFunc(r *http.Request, bound Schema, appstruct map[string]any, invalid *schema.Invalid) func() (string, error) {
	opts := render.RenderOptions{
		Action:  v.action,
		Method:  v.method,
		Buttons: v.buttons,
	}
	if opts.Action == "" {
		opts.Action = r.URL.Path
	}

	switch {
	case invalid != nil:
		// Redisplay what the user submitted, annotated with errors.
		opts.Values = CStruct(r, bound.Tree(), v.renderer)
		opts.Errors = render.MapInvalid(bound.Tree(), invalid)
	case appstruct != nil:
		opts.Values = appstruct
	default:
		opts.Values = v.defaultValues
	}

	if v.prepare != nil {
		v.prepare(r, &opts)
	}

	tree := bound.Tree()
	return func() (string, error) {
		return v.renderer.Render(r.Context(), tree, opts)
	}
}
