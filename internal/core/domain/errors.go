package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotInitialized indicates ask or rebuild was called before a
	// successful Initialize. Never auto-fixed; callers must initialize
	// explicitly.
	ErrNotInitialized = errors.New("assistant not initialized")

	// ErrCorpusLoad indicates the corpus source could not be read at all.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrEmptyCorpus indicates loading succeeded but produced zero units.
	// Distinct from ErrCorpusLoad so callers can tell "nothing to search"
	// from "couldn't read storage".
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrIndexIncompatible indicates a persisted index disagrees with the
	// configured embedding model in dimension or model identifier. The
	// orchestrator responds with a forced rebuild.
	ErrIndexIncompatible = errors.New("persisted index incompatible with embedding model")

	// ErrIndexNotFound indicates no persisted index exists yet.
	ErrIndexNotFound = errors.New("no persisted index")

	// ErrEmbeddingService indicates a transient failure calling the
	// embedding collaborator. Retryable at build time; at query time the
	// orchestrator falls back to keyword search.
	ErrEmbeddingService = errors.New("embedding service unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
