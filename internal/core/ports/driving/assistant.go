package driving

import (
	"context"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// Assistant is the retrieval API surface consumed by the CLI, TUI and MCP
// adapters.
type Assistant interface {
	// Initialize loads the corpus, chunks it and builds or restores the
	// embedding index. With forceRebuild any persisted index is discarded
	// first. A failure leaves the assistant uninitialized.
	Initialize(ctx context.Context, forceRebuild bool) error

	// Ask retrieves ranked passages for a question. Returns
	// domain.ErrNotInitialized when called before Initialize.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.AskResponse, error)

	// RebuildIndex discards all cached state and rebuilds from the corpus
	// source. Idempotent when the corpus is unchanged.
	RebuildIndex(ctx context.Context) error

	// Stats reports the current corpus and index state.
	Stats(ctx context.Context) (*domain.Stats, error)

	// SampleQuestions suggests questions appropriate to the loaded
	// collections.
	SampleQuestions() []string
}
