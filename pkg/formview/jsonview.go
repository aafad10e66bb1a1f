package formview

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-formkit/pkg/render"
)

// JSONFormView validates like FormView but answers with JSON instead of
// rendered markup: validation failures become a 400 with the flattened
// error map, successful submissions echo the appstruct.
type JSONFormView struct {
	*FormView
}

// NewJSON constructs a JSON view over the schema. The renderer is still
// required to resolve widgets during deserialization.
func NewJSON(s Schema, renderer *render.FormRenderer, options ...Option) (*JSONFormView, error) {
	view, err := New(s, renderer, options...)
	if err != nil {
		return nil, err
	}
	return &JSONFormView{FormView: view}, nil
}

// ServeHTTP implements http.Handler.
func (v *JSONFormView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bound := v.bind(r)

	appstruct, invalid, validated, err := v.validate(r, bound)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case invalid != nil:
		if v.failure != nil && v.failure(w, r, invalid) {
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]any{"errors": invalid.AsMap()})
	case validated:
		if v.success != nil && v.success(w, r, appstruct) {
			return
		}
		writeJSON(w, appstruct)
	default:
		writeJSON(w, map[string]any{})
	}
}

func writeJSON(w http.ResponseWriter, value any) {
	_ = json.NewEncoder(w).Encode(value)
}
