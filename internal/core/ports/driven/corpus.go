package driven

import (
	"context"
	"encoding/json"
)

// CorpusSource supplies the raw scripture corpus as parsed-but-untyped JSON
// documents keyed by file path. Implementations may read a local directory
// tree, a GitHub repository or a Google Drive folder; the loader does not
// care about transport.
//
// Keys keep their relative path (without extension the loader strips the
// stem itself) so duplicate file names in different folders stay
// distinguishable.
type CorpusSource interface {
	// Name identifies the source for logging ("filesystem", "github", "drive").
	Name() string

	// Fetch returns the raw JSON document per file. A file that exists but
	// holds invalid JSON is still returned; the loader records it as a
	// per-file failure. Fetch errors mean the source itself was unreadable.
	Fetch(ctx context.Context) (map[string]json.RawMessage, error)
}
