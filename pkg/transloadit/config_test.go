package transloadit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func testSettings() Settings {
	return Settings{
		AuthKey:    "auth-key",
		AuthSecret: "auth-secret",
		TemplateIDs: map[string]string{
			"template_id":      "tpl-default",
			"gallery_template": "tpl-gallery",
		},
	}
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse clock value: %v", err)
	}
	return func() time.Time { return parsed }
}

func TestSignedConfig(t *testing.T) {
	signer := NewSigner(testSettings(), WithClock(fixedClock(t, "2026-03-01T10:30:00Z")))

	signed, err := signer.SignedConfig("", "/articles/new")
	if err != nil {
		t.Fatalf("SignedConfig() error = %v", err)
	}

	want := `{"auth":{"key":"auth-key","expires":"2026/03/02 10:30:00"},"template_id":"tpl-default","redirect_url":"/articles/new"}`
	if signed.Params != want {
		t.Errorf("Params = %s\nwant %s", signed.Params, want)
	}
	if got := signer.Sign([]byte(signed.Params)); got != signed.Signature {
		t.Errorf("Signature = %q, want %q", signed.Signature, got)
	}
	if len(signed.Signature) != 40 {
		t.Errorf("Signature length = %d, want 40 hex chars", len(signed.Signature))
	}

	var cfg Config
	if err := json.Unmarshal([]byte(signed.Params), &cfg); err != nil {
		t.Fatalf("Params is not valid JSON: %v", err)
	}
	if cfg.TemplateID != "tpl-default" {
		t.Errorf("TemplateID = %q, want default template", cfg.TemplateID)
	}
}

func TestSignKnownVector(t *testing.T) {
	// RFC 2202 test case 2 for HMAC-SHA1.
	signer := NewSigner(Settings{AuthSecret: "Jefe"})
	got := signer.Sign([]byte("what do ya want for nothing?"))
	want := "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79"
	if got != want {
		t.Fatalf("Sign() = %q, want %q", got, want)
	}
}

func TestSignedConfigTemplateKeyAndWindow(t *testing.T) {
	settings := testSettings()
	settings.ExpiryWindow = time.Hour
	signer := NewSigner(settings, WithClock(fixedClock(t, "2026-03-01T10:30:00Z")))

	signed, err := signer.SignedConfig("gallery_template", "")
	if err != nil {
		t.Fatalf("SignedConfig() error = %v", err)
	}
	if !strings.Contains(signed.Params, `"template_id":"tpl-gallery"`) {
		t.Errorf("Params missing gallery template: %s", signed.Params)
	}
	if !strings.Contains(signed.Params, `"expires":"2026/03/01 11:30:00"`) {
		t.Errorf("Params missing one hour expiry: %s", signed.Params)
	}
}

func TestBindConfigUsesRequestPath(t *testing.T) {
	signer := NewSigner(testSettings(), WithClock(fixedClock(t, "2026-03-01T10:30:00Z")))

	req := httptest.NewRequest(http.MethodGet, "/profile/edit", nil)
	signed, err := signer.BindConfig(&schema.BindContext{Request: req}, "")
	if err != nil {
		t.Fatalf("BindConfig() error = %v", err)
	}
	if !strings.Contains(signed.Params, `"redirect_url":"/profile/edit"`) {
		t.Errorf("Params missing redirect: %s", signed.Params)
	}
}
