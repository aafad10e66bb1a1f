package widgets

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Cache stores rendered widget markup. GetOrCompute returns the cached
// entry for key, calling compute and storing the result on a miss.
type Cache interface {
	GetOrCompute(key string, compute func() (string, error)) (string, error)
}

// MemoryCache is a process-local Cache with no eviction, suitable for
// values that only change on deploy. Callers needing invalidation should
// key entries with a version component.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) GetOrCompute(key string, compute func() (string, error)) (string, error) {
	c.mu.RLock()
	if cached, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	value, err := compute()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
	return value, nil
}

// CacheKey derives a stable cache key from the template name, the current
// cstruct, and caller-supplied key args, so cached markup varies with user
// input and invalidates when a key arg (e.g. a table version) changes.
func CacheKey(template string, cstruct any, args ...string) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s\x00%v\x00%s", template, cstruct, strings.Join(args, "\x00"))
	return "formkit:" + hex.EncodeToString(h.Sum(nil))
}

// CacheableValues populates select-style widget values lazily: resolution
// starts with the static values, extends with the GetValues callable, and
// finishes with the append values. The point is to delay e.g. database
// queries until the widget is actually serialized, which keeps the
// rendered form cacheable.
type CacheableValues struct {
	Static    []SelectValue
	GetValues func() []SelectValue
	Append    []SelectValue
}

// Resolve builds the final values list.
func (c CacheableValues) Resolve() []SelectValue {
	values := make([]SelectValue, 0, len(c.Static)+len(c.Append))
	values = append(values, c.Static...)
	if c.GetValues != nil {
		values = append(values, c.GetValues()...)
	}
	values = append(values, c.Append...)
	return values
}

// cacheConfig is shared by the cacheable widget variants: serialized
// markup is cached iff both a cache and key args are configured.
type cacheConfig struct {
	Cache   Cache
	KeyArgs []string
}

func (c cacheConfig) serialize(template string, cstruct any, compute func() (string, error)) (string, error) {
	if c.Cache == nil || len(c.KeyArgs) == 0 {
		return compute()
	}
	return c.Cache.GetOrCompute(CacheKey(template, cstruct, c.KeyArgs...), compute)
}

// CacheableSelectWidget extends SelectWidget with lazily-resolved values
// and optional output caching.
type CacheableSelectWidget struct {
	Values CacheableValues
	cacheConfig
}

// NewCacheableSelect constructs the widget; cache and keyArgs may be zero
// to disable output caching while keeping lazy values.
func NewCacheableSelect(values CacheableValues, cache Cache, keyArgs ...string) CacheableSelectWidget {
	return CacheableSelectWidget{Values: values, cacheConfig: cacheConfig{Cache: cache, KeyArgs: keyArgs}}
}

func (CacheableSelectWidget) Name() string     { return "select" }
func (CacheableSelectWidget) Structural() bool { return false }

func (w CacheableSelectWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	return w.serialize("select.tmpl", cstruct, func() (string, error) {
		return SelectWidget{Values: w.Values.Resolve()}.Serialize(node, cstruct, data)
	})
}

func (CacheableSelectWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// CacheableOptGroupWidget extends OptGroupWidget the same way, resolving
// groups through a callable.
type CacheableOptGroupWidget struct {
	Static    []OptGroup
	GetGroups func() []OptGroup
	cacheConfig
}

func NewCacheableOptGroup(getGroups func() []OptGroup, cache Cache, keyArgs ...string) CacheableOptGroupWidget {
	return CacheableOptGroupWidget{GetGroups: getGroups, cacheConfig: cacheConfig{Cache: cache, KeyArgs: keyArgs}}
}

func (w CacheableOptGroupWidget) groups() []OptGroup {
	groups := append([]OptGroup(nil), w.Static...)
	if w.GetGroups != nil {
		groups = append(groups, w.GetGroups()...)
	}
	return groups
}

func (CacheableOptGroupWidget) Name() string     { return "select_optgroup" }
func (CacheableOptGroupWidget) Structural() bool { return false }

func (w CacheableOptGroupWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	return w.serialize("select_optgroup.tmpl", cstruct, func() (string, error) {
		return OptGroupWidget{Groups: w.groups()}.Serialize(node, cstruct, data)
	})
}

func (CacheableOptGroupWidget) Deserialize(pstruct any) any { return stripString(pstruct) }

// CacheableMultiSelectWidget extends MultiSelectWidget with lazy groups.
type CacheableMultiSelectWidget struct {
	Static    []OptGroup
	GetGroups func() []OptGroup
	cacheConfig
}

func NewCacheableMultiSelect(getGroups func() []OptGroup, cache Cache, keyArgs ...string) CacheableMultiSelectWidget {
	return CacheableMultiSelectWidget{GetGroups: getGroups, cacheConfig: cacheConfig{Cache: cache, KeyArgs: keyArgs}}
}

func (w CacheableMultiSelectWidget) groups() []OptGroup {
	groups := append([]OptGroup(nil), w.Static...)
	if w.GetGroups != nil {
		groups = append(groups, w.GetGroups()...)
	}
	return groups
}

func (CacheableMultiSelectWidget) Name() string     { return "multi_select" }
func (CacheableMultiSelectWidget) Structural() bool { return false }

func (w CacheableMultiSelectWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	return w.serialize("multi_select.tmpl", cstruct, func() (string, error) {
		return MultiSelectWidget{Groups: w.groups()}.Serialize(node, cstruct, data)
	})
}

func (w CacheableMultiSelectWidget) Deserialize(pstruct any) any {
	return MultiSelectWidget{}.Deserialize(pstruct)
}

// CacheableTypeaheadWidget extends TypeaheadWidget with lazy values.
type CacheableTypeaheadWidget struct {
	Values CacheableValues
	cacheConfig
}

func NewCacheableTypeahead(values CacheableValues, cache Cache, keyArgs ...string) CacheableTypeaheadWidget {
	return CacheableTypeaheadWidget{Values: values, cacheConfig: cacheConfig{Cache: cache, KeyArgs: keyArgs}}
}

func (CacheableTypeaheadWidget) Name() string     { return "typeahead" }
func (CacheableTypeaheadWidget) Structural() bool { return false }

func (w CacheableTypeaheadWidget) Serialize(node *schema.Node, cstruct any, data RenderData) (string, error) {
	return w.serialize("typeahead.tmpl", cstruct, func() (string, error) {
		return TypeaheadWidget{Values: w.Values.Resolve()}.Serialize(node, cstruct, data)
	})
}

func (CacheableTypeaheadWidget) Deserialize(pstruct any) any { return stripString(pstruct) }
