package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestRegistryResolveBuiltins(t *testing.T) {
	reg := NewRegistry()

	markdown := &schema.Node{Name: "body", Type: schema.TypeString}
	markdown.SetMeta("format", "markdown")
	multiline := &schema.Node{Name: "notes", Type: schema.TypeString}
	multiline.SetMeta("format", "text")

	cases := []struct {
		name string
		node *schema.Node
		want string
	}{
		{"underscore prefix", &schema.Node{Name: "_csrf", Type: schema.TypeString}, "hidden"},
		{"markdown format", markdown, "markdown"},
		{"text format", multiline, "textarea"},
		{"array type", &schema.Node{Name: "tags", Type: schema.TypeArray}, "multi_select"},
		{"plain string", &schema.Node{Name: "title", Type: schema.TypeString}, "text_input"},
		{"integer", &schema.Node{Name: "count", Type: schema.TypeInteger}, "text_input"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.node)
			if !ok {
				t.Fatalf("Resolve(%s) did not match", tc.node.Name)
			}
			if got != tc.want {
				t.Errorf("Resolve(%s) = %q, want %q", tc.node.Name, got, tc.want)
			}
		})
	}
}

func TestRegistryExplicitHintWins(t *testing.T) {
	reg := NewRegistry()
	node := &schema.Node{Name: "_looks_hidden", Type: schema.TypeString, Widget: "typeahead"}
	got, ok := reg.Resolve(node)
	if !ok || got != "typeahead" {
		t.Fatalf("Resolve() = %q ok=%v, want explicit typeahead", got, ok)
	}
}

func TestRegistryPriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(*schema.Node) bool { return true }
	reg.Register("low", 1, always)
	reg.Register("high", 100, always)
	reg.Register("also-high", 100, always)

	got, ok := reg.Resolve(&schema.Node{Name: "anything"})
	if !ok || got != "high" {
		t.Fatalf("Resolve() = %q ok=%v, want high (priority, then registration order)", got, ok)
	}
}

func TestRegistryNoMatch(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.Resolve(&schema.Node{Name: "x"}); ok {
		t.Fatalf("empty registry resolved %q", got)
	}
	if _, ok := reg.Resolve(nil); ok {
		t.Fatal("nil node must not resolve")
	}
}
