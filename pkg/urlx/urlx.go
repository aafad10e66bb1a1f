// Package urlx prepares and validates user-submitted URL values for form
// schemas: preparers normalise what the user typed, the validator raises
// schema errors for anything a browser could not fetch.
package urlx

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// MaxLength caps accepted URL values.
const MaxLength = 255

var (
	schemeRe       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.+-]*:`)
	tldRe          = regexp.MustCompile(`\.[a-zA-Z]{2,}$`)
	allowedSchemes = map[string]bool{"http": true, "https": true}
)

// Prepare normalises a URL value: schemeless values gain http://, and the
// host is punycode-encoded so internationalised domains survive storage.
// Empty and non-string values pass through untouched.
func Prepare(value any) any {
	raw, ok := value.(string)
	if !ok || raw == "" {
		return value
	}

	if !schemeRe.MatchString(raw) {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	encoded, err := idna.Lookup.ToASCII(parsed.Hostname())
	if err != nil {
		return raw
	}
	host := encoded
	if port := parsed.Port(); port != "" {
		host += ":" + port
	}
	parsed.Host = host
	return parsed.String()
}

// Validate is a schema.Validator accepting http(s) URLs with a TLD, at most
// MaxLength characters. Empty values validate so optional nodes can rely on
// their missing policy.
func Validate(node *schema.Node, value any) error {
	raw, ok := value.(string)
	if !ok || raw == "" {
		return nil
	}

	if len(raw) > MaxLength {
		return schema.NewInvalid(node, "longer than maximum length %d", MaxLength)
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return schema.NewInvalid(node, "%q is not a valid url", raw)
	}
	if !tldRe.MatchString(parsed.Hostname()) {
		return schema.NewInvalid(node, "%q is not a valid url", raw)
	}
	return nil
}

// Node builds a URL string node with the preparer and validator attached.
// Pass required=false for optional nodes deserializing absence to nil.
func Node(name string, required bool) *schema.Node {
	node := &schema.Node{
		Name:       name,
		Type:       schema.TypeString,
		Preparers:  []schema.Preparer{Prepare},
		Validators: []schema.Validator{Validate},
	}
	if !required {
		node.Missing = schema.Null
	}
	return node
}
