package transloadit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// expiresLayout is the timestamp format the transloadit API expects in
// the auth block.
const expiresLayout = "2006/01/02 15:04:05"

// AuthParams is the auth block of an assembly config.
type AuthParams struct {
	Key     string `json:"key"`
	Expires string `json:"expires"`
}

// Config is the assembly config serialized into the signed params.
type Config struct {
	Auth        AuthParams `json:"auth"`
	TemplateID  string     `json:"template_id"`
	RedirectURL string     `json:"redirect_url"`
}

// SignedConfig pairs the serialized params with their HMAC signature,
// ready to embed in a form.
type SignedConfig struct {
	Params    string
	Signature string
}

// SignerOption customises a Signer.
type SignerOption func(*Signer)

// WithClock overrides the time source, used to pin expiry timestamps in
// tests.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// Signer produces signed assembly configs from the account settings.
type Signer struct {
	settings Settings
	now      func() time.Time
}

// NewSigner constructs a Signer.
func NewSigner(settings Settings, options ...SignerOption) *Signer {
	signer := &Signer{settings: settings, now: time.Now}
	for _, opt := range options {
		if opt != nil {
			opt(signer)
		}
	}
	return signer
}

// SignedConfig builds and signs an assembly config. The template id is
// looked up by key in the settings; the redirect URL points the service
// back at the submitting form.
func (s *Signer) SignedConfig(templateIDKey, redirectURL string) (SignedConfig, error) {
	window := s.settings.ExpiryWindow
	if window <= 0 {
		window = 24 * time.Hour
	}

	cfg := Config{
		Auth: AuthParams{
			Key:     s.settings.AuthKey,
			Expires: s.now().Add(window).Format(expiresLayout),
		},
		TemplateID:  s.settings.TemplateID(templateIDKey),
		RedirectURL: redirectURL,
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return SignedConfig{}, fmt.Errorf("transloadit: marshal config: %w", err)
	}
	return SignedConfig{Params: string(raw), Signature: s.Sign(raw)}, nil
}

// Sign computes the hex HMAC-SHA1 of payload with the account secret.
func (s *Signer) Sign(payload []byte) string {
	mac := hmac.New(sha1.New, []byte(s.settings.AuthSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// BindConfig signs a config for a bound request, using the request path
// as the redirect URL.
func (s *Signer) BindConfig(bind *schema.BindContext, templateIDKey string) (SignedConfig, error) {
	redirect := ""
	if bind != nil && bind.Request != nil {
		redirect = bind.Request.URL.Path
	}
	return s.SignedConfig(templateIDKey, redirect)
}
