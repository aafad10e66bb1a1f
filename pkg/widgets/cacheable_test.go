package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestCacheableValuesResolve(t *testing.T) {
	values := CacheableValues{
		Static: []SelectValue{{Value: "", Label: "Pick one"}},
		GetValues: func() []SelectValue {
			return []SelectValue{{Value: "db", Label: "From the database"}}
		},
		Append: []SelectValue{{Value: "other", Label: "Other"}},
	}

	want := []SelectValue{
		{Value: "", Label: "Pick one"},
		{Value: "db", Label: "From the database"},
		{Value: "other", Label: "Other"},
	}
	if diff := cmp.Diff(want, values.Resolve()); diff != "" {
		t.Fatalf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheKeyStability(t *testing.T) {
	a := CacheKey("select.tmpl", "draft", "countries", "v1")
	b := CacheKey("select.tmpl", "draft", "countries", "v1")
	if a != b {
		t.Fatalf("CacheKey not stable: %q vs %q", a, b)
	}
	if c := CacheKey("select.tmpl", "live", "countries", "v1"); c == a {
		t.Fatal("CacheKey must vary with the cstruct")
	}
	if c := CacheKey("select.tmpl", "draft", "countries", "v2"); c == a {
		t.Fatal("CacheKey must vary with key args")
	}
}

func TestMemoryCacheGetOrCompute(t *testing.T) {
	cache := NewMemoryCache()
	calls := 0
	compute := func() (string, error) {
		calls++
		return "markup", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrCompute("key", compute)
		if err != nil {
			t.Fatalf("GetOrCompute() error = %v", err)
		}
		if got != "markup" {
			t.Fatalf("GetOrCompute() = %q, want markup", got)
		}
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
}

func TestCacheableSelectWidgetCachesOutput(t *testing.T) {
	stub := &stubRenderer{output: "<select>cached</select>"}
	node := &schema.Node{Name: "country", Type: schema.TypeString}

	resolved := 0
	values := CacheableValues{GetValues: func() []SelectValue {
		resolved++
		return []SelectValue{{Value: "pt", Label: "Portugal"}}
	}}

	w := NewCacheableSelect(values, NewMemoryCache(), "countries", "v1")
	for i := 0; i < 2; i++ {
		got, err := w.Serialize(node, "pt", RenderData{Templates: stub})
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if got != "<select>cached</select>" {
			t.Fatalf("Serialize() = %q", got)
		}
	}
	if resolved != 1 {
		t.Fatalf("values resolved %d times, want 1", resolved)
	}
}

func TestCacheableSelectWidgetNoCacheWithoutKeyArgs(t *testing.T) {
	stub := &stubRenderer{}
	node := &schema.Node{Name: "country", Type: schema.TypeString}

	resolved := 0
	values := CacheableValues{GetValues: func() []SelectValue {
		resolved++
		return nil
	}}

	w := NewCacheableSelect(values, NewMemoryCache())
	for i := 0; i < 2; i++ {
		if _, err := w.Serialize(node, nil, RenderData{Templates: stub}); err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
	}
	if resolved != 2 {
		t.Fatalf("values resolved %d times, want 2 (caching disabled)", resolved)
	}
}
