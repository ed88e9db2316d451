package driven

import (
	"context"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// VectorIndex stores chunk embeddings and answers exact nearest-neighbour
// queries by inner product. Vectors are L2-normalized on insert so inner
// product equals cosine similarity.
type VectorIndex interface {
	// Build replaces the index contents with the given chunks and their
	// vectors (parallel slices) and persists both. The model name is
	// recorded so a later Load can verify compatibility.
	Build(ctx context.Context, chunks []domain.Chunk, vectors [][]float32, model string) error

	// Load restores a persisted index. It returns the chunk metadata that
	// was saved alongside the vectors. domain.ErrIndexNotFound means no
	// index exists; domain.ErrIndexIncompatible means the stored model or
	// dimension disagrees with the arguments.
	Load(ctx context.Context, model string, dimensions int) ([]domain.Chunk, error)

	// Search returns the k nearest chunks to the query vector, best
	// first. Ties keep insertion order.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of indexed vectors.
	Count() int

	// Dimensions returns the vector size of the loaded index, 0 if empty.
	Dimensions() int

	// Clear drops the in-memory index and removes persisted artifacts.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkIndex is the insertion position of the matched chunk.
	ChunkIndex int

	// Score is the cosine similarity of the match.
	Score float64
}
