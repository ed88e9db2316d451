package domain

// Chunk is a bounded-length slice of a unit's searchable text. Chunks are
// the items that get embedded and indexed; each carries the owning unit's
// full metadata for citation.
type Chunk struct {
	// Unit is the owning scripture unit.
	Unit ScriptureUnit

	// ChunkID is the 0-based position of this chunk within the unit.
	ChunkID int

	// Text is the chunk content.
	Text string

	// SearchText is the lowercased form of Text used for lexical matching.
	SearchText string
}
