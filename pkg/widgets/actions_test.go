package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestButtons(t *testing.T) {
	got := Buttons("save", Button{Name: "cancel", Title: "Go back", Type: "button"}, 42)
	want := []Button{
		{Name: "save", Title: "Save", Type: "submit"},
		{Name: "cancel", Title: "Go back", Type: "button"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Buttons() mismatch (-want +got):\n%s", diff)
	}
}

func TestActionsWidget(t *testing.T) {
	w := NewActions("save")
	if !w.Structural() {
		t.Fatal("actions widget must be structural")
	}
	if got := w.Deserialize([]string{"save"}); got != nil {
		t.Fatalf("Deserialize() = %v, want nil", got)
	}

	stub := &stubRenderer{}
	node := &schema.Node{Name: "actions", Type: schema.TypeString}
	if _, err := w.Serialize(node, nil, RenderData{Templates: stub}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if stub.lastName != "templates/actions.tmpl" {
		t.Errorf("template = %q, want templates/actions.tmpl", stub.lastName)
	}
	buttons, ok := stub.lastValues["buttons"].([]Button)
	if !ok || len(buttons) != 1 || buttons[0].Title != "Save" {
		t.Errorf("buttons = %v, want single Save button", stub.lastValues["buttons"])
	}
}
