package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, the assistant runs in
// keyword-only mode.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, multilingual models)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// Output order matches input order; the flat index relies on row
	// position to link vectors back to chunks.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This must match the persisted index configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
