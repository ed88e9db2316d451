package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driving"
	"github.com/shastra-labs/shastra-cli/internal/corpus"
	"github.com/shastra-labs/shastra-cli/internal/keyword"
	"github.com/shastra-labs/shastra-cli/internal/logger"
	"github.com/shastra-labs/shastra-cli/internal/postprocessors/chunker"
	"github.com/shastra-labs/shastra-cli/internal/query"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// DefaultTopK is the number of sources returned when neither the caller
// nor the configuration specifies one.
const DefaultTopK = 5

// SimilarityThreshold is the default minimum cosine similarity for an
// embedding hit to count as relevant.
const SimilarityThreshold = 0.3

// Search method identifiers reported in responses and stats.
const (
	MethodEmbedding = "embedding"
	MethodKeyword   = "keyword"
)

// AssistantService orchestrates corpus loading, chunking, indexing and
// retrieval. It moves between two states: uninitialized (only Initialize
// and Stats are allowed) and ready.
type AssistantService struct {
	source   driven.CorpusSource
	index    driven.VectorIndex
	embedder driven.EmbeddingService // optional, nil means keyword-only

	chunkProc *chunker.Processor
	expander  *query.Expander
	matcher   *keyword.Matcher
	topK      int
	threshold float64

	mu             sync.RWMutex
	initialized    bool
	embeddingReady bool
	corpusStale    bool
	units          []domain.ScriptureUnit
	chunks         []domain.Chunk
	report         *domain.LoadReport
}

// Option configures the assistant service.
type Option func(*AssistantService)

// WithChunking sets the chunk size and overlap used when processing the
// corpus. Non-positive values keep the chunker defaults.
func WithChunking(size, overlap int) Option {
	return func(s *AssistantService) {
		var opts []chunker.Option
		if size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if overlap >= 0 {
			opts = append(opts, chunker.WithOverlap(overlap))
		}
		s.chunkProc = chunker.New(opts...)
	}
}

// WithTopK sets the default number of sources returned when an ask
// request does not specify one.
func WithTopK(k int) Option {
	return func(s *AssistantService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithSimilarityThreshold sets the minimum cosine similarity for an
// embedding hit to count as relevant.
func WithSimilarityThreshold(threshold float64) Option {
	return func(s *AssistantService) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// NewAssistantService creates the retrieval orchestrator. The embedder
// may be nil, in which case every question takes the keyword path.
func NewAssistantService(
	source driven.CorpusSource,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	opts ...Option,
) *AssistantService {
	s := &AssistantService{
		source:    source,
		index:     index,
		embedder:  embedder,
		chunkProc: chunker.New(),
		expander:  query.NewExpander(),
		matcher:   keyword.NewMatcher(),
		topK:      DefaultTopK,
		threshold: SimilarityThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the corpus, chunks it and prepares the search index.
// With forceRebuild any persisted index is discarded and embeddings are
// regenerated. A failure leaves the service uninitialized; an embedding
// outage alone does not fail initialization, it degrades the service to
// keyword mode.
func (s *AssistantService) Initialize(ctx context.Context, forceRebuild bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.initializeLocked(ctx, forceRebuild)
}

func (s *AssistantService) initializeLocked(ctx context.Context, forceRebuild bool) error {
	logger.Section("Assistant Initialization")
	s.initialized = false

	loader := corpus.NewLoader(s.source)
	units, report, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("Loaded %d units from %d files", report.UnitCount, report.FilesLoaded)
	for _, f := range report.Failures {
		logger.Warn("Skipped %s: %s", f.File, f.Reason)
	}

	var chunks []domain.Chunk
	for _, unit := range units {
		chunks = append(chunks, s.chunkProc.Process(unit)...)
	}
	logger.Debug("Chunked corpus into %d chunks", len(chunks))

	s.units = units
	s.chunks = chunks
	s.report = report
	s.embeddingReady = false
	s.corpusStale = false

	if s.embedder != nil {
		s.prepareIndex(ctx, chunks, forceRebuild)
	} else {
		logger.Info("No embedding service configured, keyword mode")
	}

	s.initialized = true
	return nil
}

// prepareIndex restores or rebuilds the vector index. Failures are
// logged, not returned: the service stays usable in keyword mode.
func (s *AssistantService) prepareIndex(ctx context.Context, chunks []domain.Chunk, forceRebuild bool) {
	model := s.embedder.ModelName()
	dims := s.embedder.Dimensions()

	if forceRebuild {
		if err := s.index.Clear(ctx); err != nil {
			logger.Warn("Clearing index failed: %v", err)
		}
	} else {
		loaded, err := s.index.Load(ctx, model, dims)
		switch {
		case err == nil:
			logger.Info("Restored persisted index: %d chunks, model %s", len(loaded), model)
			s.chunks = loaded
			s.embeddingReady = true
			return
		case errors.Is(err, domain.ErrIndexNotFound):
			logger.Debug("No persisted index, building")
		case errors.Is(err, domain.ErrIndexIncompatible):
			logger.Warn("Persisted index incompatible, rebuilding: %v", err)
			if clearErr := s.index.Clear(ctx); clearErr != nil {
				logger.Warn("Clearing incompatible index failed: %v", clearErr)
			}
		default:
			logger.Warn("Loading index failed, rebuilding: %v", err)
		}
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	logger.Info("Embedding %d chunks with %s", len(texts), model)
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("Embedding failed, falling back to keyword mode: %v", err)
		return
	}

	if err := s.index.Build(ctx, chunks, vectors, model); err != nil {
		logger.Warn("Index build failed, falling back to keyword mode: %v", err)
		return
	}

	logger.Info("Index built: %d vectors, %d dimensions", s.index.Count(), s.index.Dimensions())
	s.embeddingReady = true
}

// Ask retrieves ranked passages for a question. The embedding path is
// preferred; a query-time embedding failure falls back to keyword search
// for that question only.
func (s *AssistantService) Ask(
	ctx context.Context, question string, opts domain.AskOptions,
) (*domain.AskResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, domain.ErrNotInitialized
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.topK
	}

	logger.Section("Ask")
	logger.Debug("Question: %q filter: %q", question, opts.ScriptureFilter)

	expanded := s.expander.Expand(question, opts.ScriptureFilter)
	logger.Debug("Detected language: %s, %d keywords", expanded.DetectedLanguage, len(expanded.Keywords))

	var sources []domain.SearchResult
	method := MethodKeyword

	if s.embeddingReady {
		results, err := s.embeddingSearch(ctx, expanded, opts.ScriptureFilter, topK)
		if err != nil {
			logger.Warn("Embedding search failed, falling back to keywords: %v", err)
		} else {
			sources = results
			method = MethodEmbedding
		}
	}

	if method == MethodKeyword {
		sources = s.matcher.Search(s.chunks, expanded.Keywords, opts.ScriptureFilter, topK)
	}

	resp := &domain.AskResponse{
		Sources:      sources,
		Expanded:     expanded,
		SearchMethod: method,
	}
	if len(sources) == 0 {
		resp.Message = domain.NoResultsMessage
	}

	logger.Info("Answered via %s search with %d sources", method, len(sources))
	return resp, nil
}

// embeddingSearch embeds the expanded query and scans the vector index.
// Hits below the similarity threshold or outside the scripture filter
// are dropped.
func (s *AssistantService) embeddingSearch(
	ctx context.Context, expanded domain.ExpandedQuery, filter string, topK int,
) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(ctx, expanded.Expanded)
	if err != nil {
		return nil, err
	}

	// Rank everything: the scan is exact and in-memory, and threshold
	// plus collection pruning may discard most of the best candidates.
	hits, err := s.index.Search(ctx, vec, len(s.chunks))
	if err != nil {
		return nil, err
	}

	var results []domain.SearchResult
	for _, hit := range hits {
		if hit.Score < s.threshold {
			continue
		}
		if hit.ChunkIndex < 0 || hit.ChunkIndex >= len(s.chunks) {
			continue
		}
		chunk := s.chunks[hit.ChunkIndex]
		if !domain.MatchesFilter(chunk.Unit.CollectionDisplay, filter) {
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk:           chunk,
			SimilarityScore: hit.Score,
		})
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// RebuildIndex discards all cached state, clears persisted artifacts and
// rebuilds from the corpus source. Rebuilding an unchanged corpus yields
// an equivalent index.
func (s *AssistantService) RebuildIndex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return domain.ErrNotInitialized
	}

	logger.Section("Index Rebuild")
	return s.initializeLocked(ctx, true)
}

// Stats reports the current corpus and index state. Callable in any
// state; an uninitialized service reports zero counts.
func (s *AssistantService) Stats(ctx context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{
		Status:      domain.StatusUninitialized,
		Collections: map[string]int{},
		CorpusStale: s.corpusStale,
	}
	if !s.initialized {
		return stats, nil
	}

	stats.Status = domain.StatusReady
	stats.TotalUnits = len(s.units)
	stats.TotalChunks = len(s.chunks)
	stats.SearchMethod = MethodKeyword
	if s.embeddingReady {
		stats.SearchMethod = MethodEmbedding
		stats.EmbeddingDimension = s.index.Dimensions()
	}

	for _, unit := range s.units {
		stats.Collections[unit.CollectionDisplay]++
	}

	return stats, nil
}

// MarkCorpusStale flags that the corpus changed after the last build.
// Called by the filesystem watcher; cleared on the next Initialize or
// RebuildIndex.
func (s *AssistantService) MarkCorpusStale() {
	s.mu.Lock()
	s.corpusStale = true
	s.mu.Unlock()
}

// collectionQuestions maps collection keys to suggested questions.
var collectionQuestions = map[string][]string{
	"bhagavad_gita": {
		"What does Krishna say about performing one's duty?",
		"How does the Gita describe the immortal soul?",
	},
	"ramcharitmanas": {
		"How does Tulsidas describe devotion to Rama?",
	},
	"valmiki_ramayana": {
		"How did Hanuman cross the ocean to Lanka?",
	},
	"ramayana": {
		"What virtues does Rama embody?",
	},
	"mahabharata": {
		"What led to the war at Kurukshetra?",
	},
	"rigveda": {
		"Which hymns praise Agni?",
	},
}

// genericQuestions are offered regardless of which collections loaded.
var genericQuestions = []string{
	"What is dharma?",
	"What is the path to moksha?",
	"धर्म क्या है?",
}

// SampleQuestions suggests questions matched to the loaded collections,
// padded with generic ones. Order is deterministic.
func (s *AssistantService) SampleQuestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	present := map[string]bool{}
	for _, unit := range s.units {
		present[unit.Collection] = true
	}

	keys := make([]string, 0, len(present))
	for key := range present {
		if _, ok := collectionQuestions[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var questions []string
	for _, key := range keys {
		questions = append(questions, collectionQuestions[key]...)
	}
	questions = append(questions, genericQuestions...)
	return questions
}
