package formview

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

type stubSession struct{ token string }

func (s stubSession) CSRFToken() string { return s.token }

func articleSchema() Schema {
	return Wrap(schema.NewCSRFSchema("article", nil,
		&schema.Node{Name: "title", Type: schema.TypeString},
		&schema.Node{Name: "body", Type: schema.TypeString, Missing: schema.Null},
	))
}

func testView(t *testing.T, options ...Option) *FormView {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	base := []Option{
		WithSessions(func(*http.Request) schema.TokenSession {
			return stubSession{token: "tok-1"}
		}),
	}
	view, err := New(articleSchema(), renderer, append(base, options...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return view
}

func postRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormViewRendersOnGet(t *testing.T) {
	view := testView(t)
	rec := httptest.NewRecorder()

	result, err := view.Handle(rec, httptest.NewRequest(http.MethodGet, "/articles/1", nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result == nil {
		t.Fatal("Handle() returned nil result")
	}

	if result.FormName != "Edit Article" {
		t.Errorf("FormName = %q, want Edit Article", result.FormName)
	}
	want := []Section{{Name: "title", Title: "Title"}, {Name: "body", Title: "Body"}}
	if diff := cmp.Diff(want, result.Sections); diff != "" {
		t.Errorf("Sections mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(result.Form, `name="_csrf" value="tok-1"`) {
		t.Errorf("rendered form missing bound token:\n%s", result.Form)
	}
	if !strings.Contains(result.Form, `action="/articles/1"`) {
		t.Errorf("action should default to the request path:\n%s", result.Form)
	}
}

func TestFormViewValidSubmission(t *testing.T) {
	var got map[string]any
	view := testView(t, WithSuccess(func(w http.ResponseWriter, r *http.Request, appstruct map[string]any) bool {
		got = appstruct
		http.Redirect(w, r, "/articles", http.StatusSeeOther)
		return true
	}))

	rec := httptest.NewRecorder()
	result, err := view.Handle(rec, postRequest("/articles/1", url.Values{
		"_csrf": {"tok-1"},
		"title": {"  Hello  "},
		"body":  {"text"},
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result != nil {
		t.Fatal("Handle() should return nil when the success hook responds")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want redirect", rec.Code)
	}

	want := map[string]any{"_csrf": "tok-1", "title": "Hello", "body": "text"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("appstruct mismatch (-want +got):\n%s", diff)
	}
}

func TestFormViewInvalidSubmission(t *testing.T) {
	view := testView(t)
	rec := httptest.NewRecorder()

	result, err := view.Handle(rec, postRequest("/articles/1", url.Values{
		"_csrf": {"tok-1"},
		"body":  {"text"},
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if result.Invalid == nil {
		t.Fatal("Invalid must be set on validation failure")
	}
	if !strings.Contains(result.Form, "has-error") {
		t.Errorf("redisplayed form missing error chrome:\n%s", result.Form)
	}
	if !strings.Contains(result.Form, `value="text"`) {
		t.Errorf("redisplayed form should keep submitted values:\n%s", result.Form)
	}
}

func TestFormViewBadToken(t *testing.T) {
	view := testView(t)
	rec := httptest.NewRecorder()

	result, err := view.Handle(rec, postRequest("/articles/1", url.Values{
		"_csrf": {"stale"},
		"title": {"Hello"},
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := result.Invalid.AsMap()["_csrf"]; got != "invalid CSRF token" {
		t.Errorf("csrf error = %q", got)
	}
}

func TestFormViewIgnoredAction(t *testing.T) {
	called := false
	view := testView(t, WithSuccess(func(http.ResponseWriter, *http.Request, map[string]any) bool {
		called = true
		return true
	}))

	rec := httptest.NewRecorder()
	result, err := view.Handle(rec, postRequest("/articles/1", url.Values{
		"cancel": {"cancel"},
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if called {
		t.Error("success hook must not run for ignored actions")
	}
	if result == nil || result.Invalid != nil {
		t.Fatalf("ignored action should render the form, got %+v", result)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestFormViewCreateName(t *testing.T) {
	view := testView(t, WithButtons("create"), WithEntityName("Article"))
	if got := view.FormName(); got != "Create new Article" {
		t.Fatalf("FormName() = %q", got)
	}

	named := testView(t, WithFormName("Anything"))
	if got := named.FormName(); got != "Anything" {
		t.Fatalf("FormName() override = %q", got)
	}
}

func TestFormViewLazyRender(t *testing.T) {
	view := testView(t, WithLazyRender())
	rec := httptest.NewRecorder()

	result, err := view.Handle(rec, httptest.NewRequest(http.MethodGet, "/articles/1", nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.Form != "" {
		t.Error("lazy render must leave Form empty")
	}
	markup, err := result.RenderForm()
	if err != nil {
		t.Fatalf("RenderForm() error = %v", err)
	}
	if !strings.Contains(markup, `name="title"`) {
		t.Errorf("RenderForm() output missing fields:\n%s", markup)
	}
}

func TestFormViewCompleteHook(t *testing.T) {
	view := testView(t, WithComplete(func(_ *http.Request, result *Result) {
		result.Vars["page_title"] = result.FormName
	}))
	rec := httptest.NewRecorder()

	result, err := view.Handle(rec, httptest.NewRequest(http.MethodGet, "/articles/1", nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.Vars["page_title"] != "Edit Article" {
		t.Errorf("Vars = %v, want complete hook contribution", result.Vars)
	}
}
