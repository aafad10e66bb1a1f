package schema

import "testing"

func names(children []*Node) []string {
	out := make([]string, len(children))
	for idx, child := range children {
		out[idx] = child.Name
	}
	return out
}

func TestApplyFieldOrder(t *testing.T) {
	cases := []struct {
		name  string
		order map[string]int
		want  []string
	}{
		{
			name: "no order keeps declaration",
			want: []string{"a", "b", "c"},
		},
		{
			name:  "append with -1",
			order: map[string]int{"a": -1},
			want:  []string{"b", "c", "a"},
		},
		{
			name:  "insert at index",
			order: map[string]int{"c": 0},
			want:  []string{"c", "a", "b"},
		},
		{
			name:  "index past end appends",
			order: map[string]int{"a": 9},
			want:  []string{"b", "c", "a"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New("form", tc.order,
				&Node{Name: "a"}, &Node{Name: "b"}, &Node{Name: "c"},
			)
			got := names(s.Children)
			if len(got) != len(tc.want) {
				t.Fatalf("child count mismatch: %v", got)
			}
			for idx := range tc.want {
				if got[idx] != tc.want[idx] {
					t.Fatalf("order mismatch: got %v want %v", got, tc.want)
				}
			}
		})
	}
}

func TestBind_ClonesBeforeDeferred(t *testing.T) {
	definition := New("form", nil, &Node{
		Name: "token",
		Type: TypeString,
		Deferred: []DeferredFunc{func(node *Node, bind *BindContext) {
			node.Default = bind.Var("token")
		}},
	})

	bound := definition.Bind(&BindContext{Vars: map[string]any{"token": "abc"}})
	if bound.Child("token").Default != "abc" {
		t.Fatalf("deferred default not applied: %v", bound.Child("token").Default)
	}
	if definition.Child("token").Default != nil {
		t.Fatal("bind mutated the schema definition")
	}
}
