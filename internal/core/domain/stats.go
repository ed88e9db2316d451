package domain

// Assistant lifecycle states reported by Stats.
const (
	StatusUninitialized = "uninitialized"
	StatusReady         = "ready"
)

// Stats describes the assistant's current corpus and index.
type Stats struct {
	// Status is StatusReady or StatusUninitialized.
	Status string

	// TotalUnits is the number of scripture units in memory.
	TotalUnits int

	// TotalChunks is the number of indexed chunks.
	TotalChunks int

	// EmbeddingDimension is the vector size of the active index, 0 when
	// running in keyword-only mode.
	EmbeddingDimension int

	// SearchMethod is "embedding" or "keyword".
	SearchMethod string

	// Collections maps collection display names to unit counts.
	Collections map[string]int

	// CorpusStale is true when the corpus directory changed after the
	// last build and a rebuild is recommended.
	CorpusStale bool
}
