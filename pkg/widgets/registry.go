package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Matcher decides whether a widget should handle the supplied node.
type Matcher func(node *schema.Node) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget names for nodes based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to
// registration order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
// Higher priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a node. The node's explicit Widget
// hint is honoured before matcher evaluation.
func (r *Registry) Resolve(node *schema.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	if explicit := strings.TrimSpace(node.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(node) {
			return entry.name, true
		}
	}
	return "", false
}

func (r *Registry) registerBuiltins() {
	r.Register("hidden", 90, func(node *schema.Node) bool {
		return strings.HasPrefix(node.Name, "_")
	})

	r.Register("markdown", 70, func(node *schema.Node) bool {
		return strings.EqualFold(node.Meta("format"), "markdown")
	})

	r.Register("textarea", 60, func(node *schema.Node) bool {
		format := strings.ToLower(node.Meta("format"))
		return format == "text" || format == "multiline"
	})

	r.Register("multi_select", 50, func(node *schema.Node) bool {
		return node.Type == schema.TypeArray
	})

	r.Register("text_input", 10, func(node *schema.Node) bool {
		switch node.Type {
		case schema.TypeString, schema.TypeInteger, schema.TypeNumber, "":
			return true
		default:
			return false
		}
	})
}
