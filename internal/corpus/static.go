package corpus

import (
	"context"
	"encoding/json"
)

// StaticSource is an in-memory corpus source over a pre-fetched mapping of
// file path to raw JSON. Used by tests and by callers that already hold the
// corpus in memory.
type StaticSource map[string]json.RawMessage

// Name identifies the source for logging.
func (StaticSource) Name() string { return "static" }

// Fetch returns the mapping unchanged.
func (s StaticSource) Fetch(_ context.Context) (map[string]json.RawMessage, error) {
	return s, nil
}
