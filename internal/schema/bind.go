package schema

import "net/http"

// TokenSession exposes the anti-forgery token round-tripped through the
// session and the hidden form field.
type TokenSession interface {
	CSRFToken() string
}

// BindContext carries request-scoped state into deferred node resolution.
type BindContext struct {
	Request *http.Request
	Session TokenSession

	// Vars holds caller-supplied bind values keyed by convention, e.g.
	// transloadit settings or a panel layout.
	Vars map[string]any
}

// Var fetches a bind variable, returning nil when unset.
func (b *BindContext) Var(key string) any {
	if b == nil || b.Vars == nil {
		return nil
	}
	return b.Vars[key]
}

// DeferredFunc resolves request-scoped node configuration at bind time.
// Implementations mutate the cloned node in place.
type DeferredFunc func(node *Node, bind *BindContext)

// Bind deep-clones the schema and applies every deferred func with the
// supplied context. The receiver is never mutated, matching the contract
// that schema definitions are shared across requests.
func (s *Schema) Bind(bind *BindContext) *Schema {
	bound := s.Clone()
	bindNode(bound.Node, bind)
	return bound
}

func bindNode(node *Node, bind *BindContext) {
	for _, deferred := range node.Deferred {
		deferred(node, bind)
	}
	for _, child := range node.Children {
		bindNode(child, bind)
	}
}
