package schema

import (
	"crypto/subtle"
	"net/http"
)

// CSRFFieldName is the conventional hidden input carrying the token.
const CSRFFieldName = "_csrf"

// https://www.rfc-editor.org/rfc/rfc9110#section-9.2.1
var safeMethods = map[string]bool{
	http.MethodGet:  true,
	http.MethodHead: true,
}

// SafeMethod reports whether the request method never mutates state and so
// never requires CSRF validation.
func SafeMethod(method string) bool {
	return safeMethods[method]
}

// CSRFNode builds the hidden `_csrf` node. At bind time the node defaults
// to the session token; for safe methods an absent value falls back to the
// token, for unsafe methods the submitted value must match the session
// token exactly.
func CSRFNode() *Node {
	return &Node{
		Name:   CSRFFieldName,
		Type:   TypeString,
		Widget: "hidden",
		Deferred: []DeferredFunc{
			deferredCSRFValue,
			deferredCSRFMissing,
			deferredCSRFValidator,
		},
	}
}

func deferredCSRFValue(node *Node, bind *BindContext) {
	if bind == nil || bind.Session == nil {
		return
	}
	node.Default = bind.Session.CSRFToken()
}

func deferredCSRFMissing(node *Node, bind *BindContext) {
	if bind == nil || bind.Session == nil || bind.Request == nil {
		return
	}
	if SafeMethod(bind.Request.Method) {
		node.Missing = bind.Session.CSRFToken()
		return
	}
	node.Missing = nil
}

func deferredCSRFValidator(node *Node, bind *BindContext) {
	if bind == nil || bind.Session == nil || bind.Request == nil {
		return
	}
	if SafeMethod(bind.Request.Method) {
		return
	}
	token := bind.Session.CSRFToken()
	node.Validators = append(node.Validators, func(node *Node, value any) error {
		submitted, ok := value.(string)
		if !ok || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			return NewInvalid(node, "invalid CSRF token")
		}
		return nil
	})
}

// NewCSRFSchema builds a schema whose first child is the `_csrf` node,
// then applies the field order to the remaining children.
func NewCSRFSchema(name string, fieldOrder map[string]int, children ...*Node) *Schema {
	all := make([]*Node, 0, len(children)+1)
	all = append(all, CSRFNode())
	all = append(all, children...)
	return New(name, fieldOrder, all...)
}
