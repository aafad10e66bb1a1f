package transloadit

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/urlx"
)

// ImageSizes are the encoded variants an image assembly produces.
var ImageSizes = []string{"small", "medium", "large", "original"}

// ImageNode builds a mapping node with one URL field per image size.
// Optional image nodes deserialize absent variants to nil and render a
// remove control.
func ImageNode(name string, required bool) *schema.Node {
	node := &schema.Node{Name: name, Type: schema.TypeObject}
	for _, size := range ImageSizes {
		node.Children = append(node.Children, urlx.Node(size, required))
	}
	if !required {
		node.Missing = map[string]any{}
		node.SetMeta(allowRemoveMetaKey, "true")
	}
	return node
}

// ImageField builds a single-URL image field rendered through the image
// widget: an upload preview plus the hidden input carrying the stored
// URL. The signed config is attached when the schema binds with a
// signer.
func ImageField(name string, required bool) *schema.Node {
	node := urlx.Node(name, required)
	node.Widget = "transloadit_image"
	node.Deferred = append(node.Deferred, DeferredSignedConfig)
	if !required {
		node.SetMeta(allowRemoveMetaKey, "true")
	}
	return node
}

// UploadNode builds the hidden node the assembly results post back
// under. Binding with a signer in the context vars stamps the signed
// config onto the node so the config widget can embed it.
func UploadNode() *schema.Node {
	node := &schema.Node{
		Name:     FieldName,
		Type:     schema.TypeString,
		Widget:   "transloadit_config",
		Missing:  schema.Drop,
		Deferred: []schema.DeferredFunc{DeferredSignedConfig},
	}
	node.SetMeta("hidden", "true")
	return node
}

// Target tells the upload schema where parsed results for a data field
// land in the cstruct.
type Target struct {
	// DataField names the form input the files were uploaded under.
	DataField string

	// Sequence writes every upload slot; otherwise only the first slot
	// is written.
	Sequence bool
}

// Mapping maps dotted cstruct paths to result targets. A path containing
// ".*." addresses one key inside each item of a sequence, filling only
// the items whose value is empty, e.g. "images.*.image".
type Mapping map[string]Target

// UploadSchema is a CSRF form schema with an embedded upload results
// node. Deserialize pops the raw results payload, parses it, and patches
// the mapped cstruct paths before running normal schema deserialization.
type UploadSchema struct {
	*schema.Schema

	Mapping       Mapping
	TemplateIDKey string

	// Logger receives parse warnings. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewUploadSchema builds the schema: a leading _csrf node, the provided
// children in field order, and the trailing upload results node.
func NewUploadSchema(name string, mapping Mapping, fieldOrder map[string]int, children ...*schema.Node) *UploadSchema {
	all := make([]*schema.Node, 0, len(children)+1)
	all = append(all, children...)
	all = append(all, UploadNode())
	return &UploadSchema{
		Schema:  schema.NewCSRFSchema(name, fieldOrder, all...),
		Mapping: mapping,
	}
}

// Bind clones the schema and resolves deferred nodes for the request.
// The schema's template id key is exposed to the deferred config
// resolver through the context vars.
func (s *UploadSchema) Bind(bind *schema.BindContext) *UploadSchema {
	if s.TemplateIDKey != "" {
		bind = withVar(bind, TemplateIDKeyVar, s.TemplateIDKey)
	}
	return &UploadSchema{
		Schema:        s.Schema.Bind(bind),
		Mapping:       s.Mapping,
		TemplateIDKey: s.TemplateIDKey,
		Logger:        s.Logger,
	}
}

// withVar copies the bind context with one extra var, leaving the
// caller's context and vars untouched.
func withVar(bind *schema.BindContext, key string, value any) *schema.BindContext {
	next := &schema.BindContext{}
	if bind != nil {
		*next = *bind
	}
	vars := make(map[string]any, len(next.Vars)+1)
	for name, existing := range next.Vars {
		vars[name] = existing
	}
	vars[key] = value
	next.Vars = vars
	return next
}

// Deserialize unpacks the assembly results into the mapped fields, then
// deserializes the patched cstruct.
func (s *UploadSchema) Deserialize(cstruct map[string]any) (map[string]any, error) {
	if len(cstruct) == 0 {
		return s.Schema.Deserialize(cstruct)
	}

	raw, _ := cstruct[FieldName].(string)
	delete(cstruct, FieldName)
	if raw != "" {
		s.applyResults(cstruct, ParseResults(raw, s.Logger))
	}
	return s.Schema.Deserialize(cstruct)
}

func (s *UploadSchema) applyResults(cstruct map[string]any, data map[string][]map[string]string) {
	for path, target := range s.Mapping {
		slots := data[target.DataField]
		if !target.Sequence {
			if len(slots) == 0 {
				continue
			}
			setValue(cstruct, path, toAny(slots[0]))
			continue
		}
		if before, itemKey, ok := strings.Cut(path, ".*."); ok {
			fillSequenceSlots(cstruct, before, itemKey, slots)
			continue
		}
		items := make([]any, 0, len(slots))
		for _, slot := range slots {
			items = append(items, toAny(slot))
		}
		setValue(cstruct, path, items)
	}
}

// fillSequenceSlots patches itemKey on each sequence item whose value is
// empty, consuming upload slots in order. Items already populated (e.g.
// previously saved images round-tripping through the form) keep their
// values.
func fillSequenceSlots(cstruct map[string]any, path, itemKey string, slots []map[string]string) {
	items, ok := getValue(cstruct, path).([]any)
	if !ok {
		return
	}
	next := 0
	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if !isEmptyValue(item[itemKey]) {
			continue
		}
		if next >= len(slots) {
			break
		}
		item[itemKey] = toAny(slots[next])
		next++
	}
	setValue(cstruct, path, items)
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case map[string]any:
		return len(v) == 0
	case map[string]string:
		return len(v) == 0
	default:
		return false
	}
}

func toAny(slot map[string]string) map[string]any {
	out := make(map[string]any, len(slot))
	for key, value := range slot {
		out[key] = value
	}
	return out
}

func getValue(cstruct map[string]any, path string) any {
	segments := strings.Split(path, ".")
	var current any = cstruct
	for _, segment := range segments {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = asMap[segment]
	}
	return current
}

func setValue(cstruct map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := cstruct
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			current[segment] = child
		}
		current = child
	}
	current[segments[len(segments)-1]] = value
}
