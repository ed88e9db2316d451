package corpus

import "encoding/json"

// shapeKind is the closed set of JSON document shapes the loader accepts.
// Shape detection happens once per file; the rest of the loader switches on
// the tag instead of re-inspecting types.
type shapeKind int

const (
	// listOfItems is a top-level JSON array; each element becomes a unit.
	listOfItems shapeKind = iota

	// keyedVerses is an object holding the verse list under a "verses" or
	// "shlokas" key.
	keyedVerses

	// singleRecord is a plain object that is itself one unit.
	singleRecord

	// scalarBlob is any other value (string, number, bool, null).
	scalarBlob
)

// verseListKeys are the object keys that mark a keyedVerses document,
// checked in order.
var verseListKeys = []string{"verses", "shlokas"}

// detectedShape is the result of shape detection for one file.
type detectedShape struct {
	kind  shapeKind
	items []any // elements for listOfItems / keyedVerses
	value any   // decoded value for singleRecord / scalarBlob
}

// detectShape decodes a raw JSON document and classifies it. A decode error
// is returned as-is; the caller records it as a per-file failure.
func detectShape(raw json.RawMessage) (*detectedShape, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case []any:
		return &detectedShape{kind: listOfItems, items: val}, nil
	case map[string]any:
		for _, key := range verseListKeys {
			if list, ok := val[key].([]any); ok {
				return &detectedShape{kind: keyedVerses, items: list}, nil
			}
		}
		return &detectedShape{kind: singleRecord, value: val}, nil
	default:
		return &detectedShape{kind: scalarBlob, value: val}, nil
	}
}
