package transloadit

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// FieldName is the hidden input the assembly results post back under.
const FieldName = "transloadit"

// Upload is one entry of the assembly payload's uploads list.
type Upload struct {
	Field string `json:"field"`
	ID    string `json:"id"`
}

// ResultItem is one encoded file in a results list.
type ResultItem struct {
	URL        string `json:"url"`
	Field      string `json:"field"`
	OriginalID string `json:"original_id"`
}

// Payload is the JSON document the service posts back after an assembly
// completes.
type Payload struct {
	Uploads []Upload                `json:"uploads"`
	Results map[string][]ResultItem `json:"results"`
}

// ParseResults coerces an assembly result JSON string into per-field
// upload slots: each field maps to a list of size-keyed URL maps, one per
// uploaded file, in upload order.
//
// The per-size result lists arrive in no reliable order, so items are
// slotted by original id against the uploads list. Size keys may carry
// leading colons (templates that route fields through differently named
// encoding steps); those collapse onto the bare name, and every URL is
// upgraded to https.
//
// Malformed input is logged and parsed as empty rather than failing the
// request.
func ParseResults(raw string, logger *slog.Logger) map[string][]map[string]string {
	out := make(map[string][]map[string]string)
	if strings.TrimSpace(raw) == "" {
		return out
	}
	if logger == nil {
		logger = slog.Default()
	}

	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Warn("transloadit: malformed results payload", "error", err)
		return out
	}

	// original id -> slot index, per field.
	counters := make(map[string]int)
	indexes := make(map[string]map[string]int)
	slot := func(field, originalID string) int {
		byID, ok := indexes[field]
		if !ok {
			byID = make(map[string]int)
			indexes[field] = byID
		}
		if index, ok := byID[originalID]; ok {
			return index
		}
		index := counters[field]
		byID[originalID] = index
		counters[field] = index + 1
		return index
	}
	for _, upload := range payload.Uploads {
		slot(upload.Field, upload.ID)
	}

	for size, items := range payload.Results {
		for strings.HasPrefix(size, ":") {
			size = size[1:]
		}
		// Without original ids the per-size order is all we have.
		seen := make(map[string]int)
		for _, item := range items {
			var index int
			if item.OriginalID == "" && len(payload.Uploads) == 0 {
				index = seen[item.Field]
				seen[item.Field]++
				if index+1 > counters[item.Field] {
					counters[item.Field] = index + 1
				}
			} else {
				index = slot(item.Field, item.OriginalID)
			}

			slots := out[item.Field]
			for len(slots) <= index {
				slots = append(slots, map[string]string{})
			}
			slots[index][size] = secureURL(item.URL)
			out[item.Field] = slots
		}
	}

	// Fields uploaded but absent from the results still get their empty
	// placeholder slots.
	for field, count := range counters {
		slots := out[field]
		for len(slots) < count {
			slots = append(slots, map[string]string{})
		}
		out[field] = slots
	}
	return out
}

func secureURL(raw string) string {
	if strings.HasPrefix(raw, "http://") {
		return "https://" + strings.TrimPrefix(raw, "http://")
	}
	return raw
}
