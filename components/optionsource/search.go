package optionsource

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

type matched struct {
	value    widgets.SelectValue
	isPrefix bool
}

// Search filters options by a case-insensitive substring match on value
// and label. Prefix matches sort first, then label order.
func Search(values []widgets.SelectValue, query string, limit int, opts Options) []widgets.SelectValue {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(values) <= limit {
			return append([]widgets.SelectValue{}, values...)
		}
		return append([]widgets.SelectValue{}, values[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matched, 0, 32)
	for _, value := range values {
		lowerValue := strings.ToLower(value.Value)
		lowerLabel := strings.ToLower(value.Label)
		if !strings.Contains(lowerValue, q) && !strings.Contains(lowerLabel, q) {
			continue
		}
		matches = append(matches, matched{
			value:    value,
			isPrefix: strings.HasPrefix(lowerValue, q) || strings.HasPrefix(lowerLabel, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].value.Label < matches[j].value.Label
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]widgets.SelectValue, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.value)
	}
	return out
}
