package transloadit

import (
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Bind variable keys the deferred config resolver reads.
const (
	SignerVar        = "transloadit.signer"
	TemplateIDKeyVar = "transloadit.template_id_key"
)

// Node metadata keys carrying the request-scoped signed config.
const (
	paramsMetaKey      = "transloadit_params"
	signatureMetaKey   = "transloadit_signature"
	allowRemoveMetaKey = "allow_remove"
)

// BindVars packages a signer for schema binding, keyed the way
// DeferredSignedConfig expects. Merge the result into the bind context
// Vars (e.g. via the form view's bind-vars hook).
func BindVars(signer *Signer) map[string]any {
	return map[string]any{SignerVar: signer}
}

// DeferredSignedConfig resolves the bound signer and stamps the signed
// assembly config onto the node metadata, where the rendering widget
// picks it up. Nodes bind cleanly without a signer; the widget then
// emits an empty config.
func DeferredSignedConfig(node *schema.Node, bind *schema.BindContext) {
	signer, ok := bind.Var(SignerVar).(*Signer)
	if !ok || signer == nil {
		return
	}
	templateIDKey, _ := bind.Var(TemplateIDKeyVar).(string)
	signed, err := signer.BindConfig(bind, templateIDKey)
	if err != nil {
		return
	}
	node.SetMeta(paramsMetaKey, signed.Params)
	node.SetMeta(signatureMetaKey, signed.Signature)
}

// ConfigWidget renders the hidden input carrying the signed assembly
// config, which the browser-side uploader reads before posting files.
// When a Signer is set the config is signed fresh on every render so the
// expiry window starts at render time; otherwise the static Config is
// used, falling back to the config a bound node carries in its metadata.
// The zero value is the registered default and relies on
// DeferredSignedConfig having run at bind time.
type ConfigWidget struct {
	Config SignedConfig

	Signer        *Signer
	TemplateIDKey string
	RedirectURL   string
}

func (ConfigWidget) Name() string     { return "transloadit_config" }
func (ConfigWidget) Structural() bool { return false }

func (w ConfigWidget) Serialize(node *schema.Node, cstruct any, data widgets.RenderData) (string, error) {
	config := w.Config
	if w.Signer != nil {
		signed, err := w.Signer.SignedConfig(w.TemplateIDKey, w.RedirectURL)
		if err != nil {
			return "", err
		}
		config = signed
	}
	if config.Params == "" {
		config = SignedConfig{
			Params:    node.Meta(paramsMetaKey),
			Signature: node.Meta(signatureMetaKey),
		}
	}
	values := map[string]any{
		"name":      node.Name,
		"oid":       "fk-" + node.Name,
		"params":    config.Params,
		"signature": config.Signature,
	}
	return data.Templates.RenderTemplate("templates/transloadit_config.tmpl", values)
}

func (ConfigWidget) Deserialize(pstruct any) any {
	if value, ok := pstruct.(string); ok {
		return value
	}
	if values, ok := pstruct.([]string); ok && len(values) > 0 {
		return values[0]
	}
	return pstruct
}

// ImageWidget renders an uploaded image preview plus the hidden input
// carrying its URL. Values round-trip unstripped.
type ImageWidget struct {
	Config      SignedConfig
	AllowRemove bool
	Category    string
}

func (ImageWidget) Name() string     { return "transloadit_image" }
func (ImageWidget) Structural() bool { return false }

func (w ImageWidget) Serialize(node *schema.Node, cstruct any, data widgets.RenderData) (string, error) {
	value := cstruct
	if value == nil {
		value = node.Default
	}
	if value == nil {
		value = ""
	}
	config := w.Config
	if config.Params == "" {
		config = SignedConfig{
			Params:    node.Meta(paramsMetaKey),
			Signature: node.Meta(signatureMetaKey),
		}
	}
	category := w.Category
	if category == "" {
		category = node.Meta("category")
	}
	values := map[string]any{
		"name":         node.Name,
		"oid":          "fk-" + node.Name,
		"label":        node.Label(),
		"value":        previewURL(value),
		"error":        data.Error,
		"allow_remove": w.AllowRemove || node.Meta(allowRemoveMetaKey) == "true",
		"category":     category,
		"params":       config.Params,
		"signature":    config.Signature,
	}
	return data.Templates.RenderTemplate("templates/transloadit_image.tmpl", values)
}

// previewURL picks a displayable URL from either a plain string value or
// a per-size result map, preferring the medium variant.
func previewURL(value any) any {
	sizes, ok := value.(map[string]any)
	if !ok {
		return value
	}
	for _, size := range []string{"medium", "original", "large", "small"} {
		if url, ok := sizes[size].(string); ok && url != "" {
			return url
		}
	}
	return ""
}

func (ImageWidget) Deserialize(pstruct any) any {
	if values, ok := pstruct.([]string); ok {
		if len(values) == 0 {
			return nil
		}
		return values[0]
	}
	return pstruct
}

// UploadWidget renders a bare file input wired to the browser-side
// uploader.
type UploadWidget struct {
	Multiple bool
	Accept   string
}

func (UploadWidget) Name() string     { return "transloadit_upload" }
func (UploadWidget) Structural() bool { return false }

func (w UploadWidget) Serialize(node *schema.Node, cstruct any, data widgets.RenderData) (string, error) {
	values := map[string]any{
		"name":     node.Name,
		"oid":      "fk-" + node.Name,
		"label":    node.Label(),
		"multiple": w.Multiple,
		"accept":   w.Accept,
	}
	return data.Templates.RenderTemplate("templates/transloadit_upload.tmpl", values)
}

func (UploadWidget) Deserialize(pstruct any) any { return nil }
