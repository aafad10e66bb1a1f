package widgets

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// PanelRenderer is the layout seam panels render through. Implementations
// report ok=false for unknown panel names.
type PanelRenderer interface {
	RenderPanel(name string, args ...any) (markup string, ok bool)
}

// PanelRendererFunc adapts a func to the PanelRenderer interface.
type PanelRendererFunc func(name string, args ...any) (string, bool)

func (f PanelRendererFunc) RenderPanel(name string, args ...any) (string, bool) {
	return f(name, args...)
}

var (
	panelPolicyOnce sync.Once
	panelPolicy     *bluemonday.Policy
)

func panelSanitizer() *bluemonday.Policy {
	panelPolicyOnce.Do(func() {
		panelPolicy = bluemonday.UGCPolicy().AllowAttrs("class", "id").Globally()
	})
	return panelPolicy
}

// PanelWidget serializes to a rendered named panel, letting plain layout
// markup sit inside a form. An unknown panel renders as an empty string.
// The panel output is sanitized before it reaches the form unless the
// panel renderer is marked trusted.
type PanelWidget struct {
	Panel    string
	Args     []any
	Renderer PanelRenderer

	// Trusted skips sanitization for panels whose markup the application
	// fully controls.
	Trusted bool
}

// NewPanel constructs a panel widget for the named panel.
func NewPanel(name string, renderer PanelRenderer, args ...any) PanelWidget {
	return PanelWidget{Panel: name, Renderer: renderer, Args: args}
}

func (PanelWidget) Name() string     { return "panel" }
func (PanelWidget) Structural() bool { return true }

func (w PanelWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	if w.Renderer == nil {
		return "", nil
	}
	markup, ok := w.Renderer.RenderPanel(w.Panel, w.Args...)
	if !ok {
		return "", nil
	}
	if w.Trusted {
		return markup, nil
	}
	return panelSanitizer().Sanitize(markup), nil
}

func (PanelWidget) Deserialize(pstruct any) any { return nil }
