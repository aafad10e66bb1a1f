package optionsource

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type optionPayload struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Data []optionPayload `json:"data"`
}

// Handler builds a net/http handler answering typeahead queries against
// the source.
func Handler(source Source, fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
		}

		values, err := source.Values()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseLimit(r.URL.Query().Get(opts.LimitParam))
		results := Search(values, query, limit, opts)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		payload := make([]optionPayload, 0, len(results))
		for _, result := range results {
			payload = append(payload, optionPayload{Value: result.Value, Label: result.Label})
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Data: payload})
	})
}

// RegisterRoutes mounts the handler on mux under its configured route.
// It returns the mounted pattern.
func RegisterRoutes(mux interface {
	Handle(pattern string, handler http.Handler)
}, source Source, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	mux.Handle(opts.RoutePath, Handler(source, fns...))
	return opts.RoutePath
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
