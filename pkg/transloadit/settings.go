// Package transloadit integrates form schemas with the transloadit
// upload service: signing assembly configs, parsing the JSON results the
// service posts back, and mapping those results into schema fields.
package transloadit

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultTemplateIDKey selects the assembly template when a schema does
// not name one.
const DefaultTemplateIDKey = "template_id"

// Settings carries the transloadit account credentials and template ids.
type Settings struct {
	AuthKey    string `env:"TRANSLOADIT_AUTH_KEY"`
	AuthSecret string `env:"TRANSLOADIT_AUTH_SECRET"`

	// TemplateIDs maps template id keys to assembly template ids, e.g.
	// TRANSLOADIT_TEMPLATE_IDS=template_id:abc123,gallery_template:def456
	TemplateIDs map[string]string `env:"TRANSLOADIT_TEMPLATE_IDS"`

	// ExpiryWindow bounds how long a signed config stays valid.
	ExpiryWindow time.Duration `env:"TRANSLOADIT_EXPIRY_WINDOW" envDefault:"24h"`
}

// LoadSettings reads the settings from the environment.
func LoadSettings() (Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("transloadit: load settings: %w", err)
	}
	return settings, nil
}

// TemplateID resolves a template id key, falling back to the default key
// when empty.
func (s Settings) TemplateID(key string) string {
	if key == "" {
		key = DefaultTemplateIDKey
	}
	return s.TemplateIDs[key]
}
