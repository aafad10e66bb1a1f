package render

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/transloadit"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func articleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	body := &schema.Node{Name: "body", Type: schema.TypeString, Missing: schema.Null}
	body.SetMeta("format", "multiline")
	return schema.New("article", nil,
		&schema.Node{Name: "title", Type: schema.TypeString},
		body,
	)
}

func TestRenderBasicForm(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	html, err := renderer.Render(context.Background(), articleSchema(t), RenderOptions{
		Action:  "/articles",
		Hidden:  []HiddenField{CSRFToken("_csrf", "token-123")},
		Buttons: widgets.Buttons("save", "cancel"),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<form action="/articles" method="POST" class="formkit-form"`,
		`name="_csrf" value="token-123"`,
		`name="title"`,
		`<span class="required">*</span>`,
		`<textarea id="fk-body" name="body"`,
		`>Save</button>`,
		`>Cancel</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Render() output missing %q\n%s", want, html)
		}
	}
}

type tokenSession struct{ token string }

func (s tokenSession) CSRFToken() string { return s.token }

func TestRenderUploadSchemaEmbedsSignedConfig(t *testing.T) {
	signer := transloadit.NewSigner(transloadit.Settings{
		AuthKey:     "auth-key",
		AuthSecret:  "auth-secret",
		TemplateIDs: map[string]string{"template_id": "tpl-default"},
	}, transloadit.WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	}))

	s := transloadit.NewUploadSchema("branding",
		transloadit.Mapping{"logo": {DataField: "logo"}},
		nil,
		&schema.Node{Name: "name", Type: schema.TypeString},
	)

	req := httptest.NewRequest("GET", "/branding/edit", nil)
	bound := s.Bind(&schema.BindContext{
		Request: req,
		Session: tokenSession{token: "tok-1"},
		Vars:    transloadit.BindVars(signer),
	})

	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	html, err := renderer.Render(context.Background(), bound.Schema, RenderOptions{Action: "/branding/edit"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	signed, err := signer.SignedConfig("", "/branding/edit")
	if err != nil {
		t.Fatalf("SignedConfig() error = %v", err)
	}
	for _, want := range []string{
		`type="hidden" id="fk-transloadit" name="transloadit"`,
		`data-transloadit-params=`,
		`data-transloadit-signature="` + signed.Signature + `"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Render() output missing %q\n%s", want, html)
		}
	}
	for _, reject := range []string{
		`data-field="transloadit"`,
		`>Transloadit</label>`,
		`type="text" id="fk-transloadit"`,
	} {
		if strings.Contains(html, reject) {
			t.Errorf("Render() output should not contain %q\n%s", reject, html)
		}
	}
}

func TestRenderMethodOverride(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	html, err := renderer.Render(context.Background(), articleSchema(t), RenderOptions{
		Action: "/articles/1",
		Method: "put",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, `method="POST"`) {
		t.Errorf("expected POST submit method, got:\n%s", html)
	}
	if !strings.Contains(html, `name="_method" value="PUT"`) {
		t.Errorf("expected _method override field, got:\n%s", html)
	}
}

func TestRenderFieldErrors(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	html, err := renderer.Render(context.Background(), articleSchema(t), RenderOptions{
		Errors: ErrorMapping{
			Fields: map[string]string{"title": "Required"},
			Form:   []string{"something went wrong"},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, "formkit-field has-error") {
		t.Errorf("expected error class on title field:\n%s", html)
	}
	if !strings.Contains(html, `<p class="formkit-error">Required</p>`) {
		t.Errorf("expected inline field error:\n%s", html)
	}
	if !strings.Contains(html, "something went wrong") {
		t.Errorf("expected form-level error:\n%s", html)
	}
}

func TestRenderNodeWidgetOverride(t *testing.T) {
	renderer, err := New(
		WithNodeWidget("title", widgets.SelectWidget{Values: []widgets.SelectValue{
			{Value: "draft", Label: "Draft"},
			{Value: "live", Label: "Live"},
		}}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	html, err := renderer.Render(context.Background(), articleSchema(t), RenderOptions{
		Values: map[string]any{"title": "live"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, `<select id="fk-title"`) {
		t.Errorf("expected select for title override:\n%s", html)
	}
	if !strings.Contains(html, `value="live" selected`) {
		t.Errorf("expected pre-selected value:\n%s", html)
	}
}

func TestRenderNestedMapping(t *testing.T) {
	address := &schema.Node{Name: "address", Type: schema.TypeObject, Children: []*schema.Node{
		{Name: "city", Type: schema.TypeString},
		{Name: "country", Type: schema.TypeString},
	}}
	s := schema.New("profile", nil,
		&schema.Node{Name: "name", Type: schema.TypeString},
		address,
	)

	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	html, err := renderer.Render(context.Background(), s, RenderOptions{
		Values: map[string]any{
			"address": map[string]any{"city": "Lisbon"},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, "<legend>Address</legend>") {
		t.Errorf("expected fieldset legend:\n%s", html)
	}
	if !strings.Contains(html, `name="address.city"`) {
		t.Errorf("expected dotted child name:\n%s", html)
	}
	if !strings.Contains(html, `value="Lisbon"`) {
		t.Errorf("expected nested value lookup:\n%s", html)
	}
}

func TestWidgetForFallsBackToTextInput(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	node := &schema.Node{Name: "anything", Type: schema.TypeString}
	widget := renderer.WidgetFor(node, "anything")
	if widget.Name() != "text_input" {
		t.Fatalf("WidgetFor() = %q, want text_input", widget.Name())
	}

	hidden := &schema.Node{Name: "_csrf", Type: schema.TypeString}
	if got := renderer.WidgetFor(hidden, "_csrf").Name(); got != "hidden" {
		t.Fatalf("WidgetFor(_csrf) = %q, want hidden", got)
	}
}
