package optionsource

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Source provides the option list a handler or widget draws from.
type Source interface {
	Values() ([]widgets.SelectValue, error)
}

// SourceFunc adapts a func to the Source interface.
type SourceFunc func() ([]widgets.SelectValue, error)

func (f SourceFunc) Values() ([]widgets.SelectValue, error) { return f() }

// Static builds a Source over a fixed option list.
func Static(values []widgets.SelectValue) Source {
	copied := append([]widgets.SelectValue(nil), values...)
	return SourceFunc(func() ([]widgets.SelectValue, error) {
		return copied, nil
	})
}

// FromStrings builds a sorted Source where each string is both value and
// label, e.g. timezone or locale identifiers.
func FromStrings(items []string) Source {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	values := make([]widgets.SelectValue, 0, len(sorted))
	for _, item := range sorted {
		values = append(values, widgets.SelectValue{Value: item, Label: item})
	}
	return Static(values)
}

// Memoized wraps a source so the underlying lookup (e.g. a database
// query) runs at most once.
func Memoized(source Source) Source {
	var once sync.Once
	var values []widgets.SelectValue
	var err error
	return SourceFunc(func() ([]widgets.SelectValue, error) {
		once.Do(func() {
			values, err = source.Values()
		})
		return values, err
	})
}

// CacheableValues adapts a source to the lazy resolution cacheable
// widgets use. Source errors surface as an empty option list; handlers
// report them properly over HTTP.
func CacheableValues(source Source) widgets.CacheableValues {
	return widgets.CacheableValues{
		GetValues: func() []widgets.SelectValue {
			values, err := source.Values()
			if err != nil {
				return nil
			}
			return values
		},
	}
}

// Typeahead builds a cacheable typeahead widget over the source.
func Typeahead(source Source, cache widgets.Cache, keyArgs ...string) widgets.CacheableTypeaheadWidget {
	return widgets.NewCacheableTypeahead(CacheableValues(source), cache, keyArgs...)
}

// Select builds a cacheable select widget over the source.
func Select(source Source, cache widgets.Cache, keyArgs ...string) widgets.CacheableSelectWidget {
	return widgets.NewCacheableSelect(CacheableValues(source), cache, keyArgs...)
}
