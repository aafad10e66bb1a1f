package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestMapInvalid(t *testing.T) {
	s := schema.New("profile", nil,
		&schema.Node{Name: "name", Type: schema.TypeString},
		&schema.Node{Name: "address", Type: schema.TypeObject, Children: []*schema.Node{
			{Name: "city", Type: schema.TypeString},
		}},
	)

	invalid := schema.NewInvalid(s.Node, "")
	invalid.Add("name", schema.NewInvalid(nil, "Required"))
	address := schema.NewInvalid(nil, "")
	address.Add("city", schema.NewInvalid(nil, "Required"))
	invalid.Add("address", address)
	invalid.Add("ghost", schema.NewInvalid(nil, "no such field"))

	got := MapInvalid(s, invalid)
	want := ErrorMapping{
		Fields: map[string]string{
			"name":         "Required",
			"address.city": "Required",
		},
		Form: []string{"no such field"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MapInvalid() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapInvalidNil(t *testing.T) {
	s := schema.New("empty", nil)
	got := MapInvalid(s, nil)
	if got.Fields != nil || got.Form != nil {
		t.Fatalf("MapInvalid(nil) = %+v, want empty mapping", got)
	}
}
