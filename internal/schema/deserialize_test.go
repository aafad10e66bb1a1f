package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeserialize_RequiredAndMissing(t *testing.T) {
	s := New("account", nil,
		&Node{Name: "name", Type: TypeString},
		&Node{Name: "nickname", Type: TypeString, Missing: Null},
		&Node{Name: "role", Type: TypeString, Missing: "member"},
		&Node{Name: "notes", Type: TypeString, Missing: Drop},
	)

	appstruct, err := s.Deserialize(map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	want := map[string]any{
		"name":     "Ada",
		"nickname": nil,
		"role":     "member",
	}
	if diff := cmp.Diff(want, appstruct); diff != "" {
		t.Fatalf("appstruct mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Deserialize(map[string]any{}); err == nil {
		t.Fatal("expected required error for name")
	} else if invalid, ok := AsInvalid(err); !ok {
		t.Fatalf("expected *Invalid, got %T", err)
	} else if invalid.AsMap()["name"] != "required" {
		t.Fatalf("unexpected error map: %v", invalid.AsMap())
	}
}

func TestDeserialize_Coercion(t *testing.T) {
	s := New("widget", nil,
		&Node{Name: "count", Type: TypeInteger},
		&Node{Name: "ratio", Type: TypeNumber},
		&Node{Name: "active", Type: TypeBoolean},
		&Node{Name: "tags", Type: TypeArray},
	)

	appstruct, err := s.Deserialize(map[string]any{
		"count":  "42",
		"ratio":  "0.5",
		"active": "on",
		"tags":   []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	want := map[string]any{
		"count":  42,
		"ratio":  0.5,
		"active": true,
		"tags":   []any{"a", "b"},
	}
	if diff := cmp.Diff(want, appstruct); diff != "" {
		t.Fatalf("appstruct mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Deserialize(map[string]any{
		"count": "nope", "ratio": "1", "active": "true", "tags": "x",
	}); err == nil {
		t.Fatal("expected coercion error for count")
	}
}

func TestDeserialize_PreparersThenValidators(t *testing.T) {
	var sawPrepared string
	s := New("form", nil, &Node{
		Name:      "email",
		Type:      TypeString,
		Preparers: []Preparer{StripWhitespace, CoerceToLowercase},
		Validators: []Validator{func(node *Node, value any) error {
			sawPrepared = value.(string)
			return nil
		}},
	})

	appstruct, err := s.Deserialize(map[string]any{"email": "  Ada@Example.COM "})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if appstruct["email"] != "ada@example.com" {
		t.Fatalf("prepared value not applied: %v", appstruct["email"])
	}
	if sawPrepared != "ada@example.com" {
		t.Fatalf("validator saw unprepared value: %q", sawPrepared)
	}
}

func TestDeserialize_NestedMapping(t *testing.T) {
	s := New("profile", nil, &Node{
		Name: "address",
		Type: TypeObject,
		Children: []*Node{
			{Name: "city", Type: TypeString},
			{Name: "zip", Type: TypeString, Missing: Null},
		},
	})

	appstruct, err := s.Deserialize(map[string]any{
		"address": map[string]any{"city": "Lisbon"},
	})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	address, ok := appstruct["address"].(map[string]any)
	if !ok {
		t.Fatalf("address not a mapping: %T", appstruct["address"])
	}
	if address["city"] != "Lisbon" || address["zip"] != nil {
		t.Fatalf("unexpected address: %v", address)
	}

	_, err = s.Deserialize(map[string]any{
		"address": map[string]any{"zip": "1000"},
	})
	invalid, ok := AsInvalid(err)
	if !ok {
		t.Fatalf("expected *Invalid, got %v", err)
	}
	if invalid.AsMap()["address.city"] != "required" {
		t.Fatalf("nested error path missing: %v", invalid.AsMap())
	}
}

func TestDeserialize_ValidatorErrorSurfacesMessage(t *testing.T) {
	s := New("form", nil, &Node{
		Name: "slug",
		Type: TypeString,
		Validators: []Validator{func(node *Node, value any) error {
			return NewInvalid(node, "%q is taken", value)
		}},
	})

	_, err := s.Deserialize(map[string]any{"slug": "home"})
	invalid, ok := AsInvalid(err)
	if !ok {
		t.Fatalf("expected *Invalid, got %v", err)
	}
	if got := invalid.AsMap()["slug"]; got != `"home" is taken` {
		t.Fatalf("unexpected message: %q", got)
	}
}
