package flat

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

func testChunk(id string, chunkID int, text string) domain.Chunk {
	return domain.Chunk{
		Unit: domain.ScriptureUnit{
			ID:                id,
			Collection:        "bhagavad_gita",
			CollectionDisplay: "Bhagavad Gita",
			SourceFile:        "gita",
			Content:           map[string]string{"text": text},
		},
		ChunkID:    chunkID,
		Text:       text,
		SearchText: text,
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(t.TempDir())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestBuildAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{
		testChunk("a", 0, "dharma"),
		testChunk("b", 0, "karma"),
		testChunk("c", 0, "moksha"),
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}

	if err := idx.Build(ctx, chunks, vectors, "test-model"); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Count() != 3 {
		t.Errorf("Count = %d, want 3", idx.Count())
	}
	if idx.Dimensions() != 3 {
		t.Errorf("Dimensions = %d, want 3", idx.Dimensions())
	}

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ChunkIndex != 0 {
		t.Errorf("best hit = chunk %d, want 0", hits[0].ChunkIndex)
	}
	if hits[1].ChunkIndex != 2 {
		t.Errorf("second hit = chunk %d, want 2", hits[1].ChunkIndex)
	}
	if hits[0].Score < 0.999 {
		t.Errorf("identical vector should score ~1.0, got %v", hits[0].Score)
	}
}

func TestSearchNormalizesQuery(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{testChunk("a", 0, "dharma")}
	if err := idx.Build(ctx, chunks, [][]float32{{3, 4}}, "m"); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Scaled copies of the same direction must score identically.
	a, err := idx.Search(ctx, []float32{3, 4}, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := idx.Search(ctx, []float32{30, 40}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a[0].Score-b[0].Score) > 1e-9 {
		t.Errorf("scores differ: %v vs %v", a[0].Score, b[0].Score)
	}
	if a[0].Score < 0.999 {
		t.Errorf("same-direction score = %v, want ~1.0", a[0].Score)
	}
}

func TestSearchTieKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{
		testChunk("a", 0, "one"),
		testChunk("b", 0, "two"),
	}
	vectors := [][]float32{{1, 0}, {1, 0}}
	if err := idx.Build(ctx, chunks, vectors, "m"); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].ChunkIndex != 0 || hits[1].ChunkIndex != 1 {
		t.Errorf("tie order = %d, %d; want 0, 1", hits[0].ChunkIndex, hits[1].ChunkIndex)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	idx, err := NewIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	chunks := []domain.Chunk{
		testChunk("a", 0, "dharma text"),
		testChunk("b", 1, "karma text"),
	}
	if err := idx.Build(ctx, chunks, [][]float32{{1, 0}, {0, 1}}, "test-model"); err != nil {
		t.Fatal(err)
	}
	idx.Close()

	// Reopen and load from disk.
	idx2, err := NewIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer idx2.Close()

	loaded, err := idx2.Load(ctx, "test-model", 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d chunks, want 2", len(loaded))
	}
	if loaded[0].Unit.ID != "a" || loaded[0].Text != "dharma text" {
		t.Errorf("chunk 0 = %+v", loaded[0])
	}
	if loaded[1].ChunkID != 1 {
		t.Errorf("chunk 1 ChunkID = %d, want 1", loaded[1].ChunkID)
	}
	if loaded[0].Unit.CollectionDisplay != "Bhagavad Gita" {
		t.Error("unit metadata lost in round trip")
	}

	hits, err := idx2.Search(ctx, []float32{0, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].ChunkIndex != 1 {
		t.Errorf("search after load: hit %d, want 1", hits[0].ChunkIndex)
	}
}

func TestLoadMissingIndex(t *testing.T) {
	idx := newTestIndex(t)
	_, err := idx.Load(context.Background(), "test-model", 2)
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestLoadIncompatible(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{testChunk("a", 0, "x")}
	if err := idx.Build(ctx, chunks, [][]float32{{1, 0}}, "model-a"); err != nil {
		t.Fatal(err)
	}

	if _, err := idx.Load(ctx, "model-b", 2); !errors.Is(err, domain.ErrIndexIncompatible) {
		t.Errorf("model mismatch: err = %v, want ErrIndexIncompatible", err)
	}
	if _, err := idx.Load(ctx, "model-a", 768); !errors.Is(err, domain.ErrIndexIncompatible) {
		t.Errorf("dimension mismatch: err = %v, want ErrIndexIncompatible", err)
	}
}

func TestBuildReplacesExisting(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	first := []domain.Chunk{testChunk("a", 0, "x"), testChunk("b", 0, "y")}
	if err := idx.Build(ctx, first, [][]float32{{1, 0}, {0, 1}}, "m"); err != nil {
		t.Fatal(err)
	}

	second := []domain.Chunk{testChunk("c", 0, "z")}
	if err := idx.Build(ctx, second, [][]float32{{1, 0}}, "m"); err != nil {
		t.Fatal(err)
	}

	if idx.Count() != 1 {
		t.Errorf("Count after rebuild = %d, want 1", idx.Count())
	}
	loaded, err := idx.Load(ctx, "m", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Unit.ID != "c" {
		t.Errorf("rebuild must be destructive, loaded %v", loaded)
	}
}

func TestBuildMismatchedInput(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{testChunk("a", 0, "x")}
	err := idx.Build(ctx, chunks, [][]float32{{1, 0}, {0, 1}}, "m")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("length mismatch: err = %v, want ErrInvalidInput", err)
	}

	err = idx.Build(ctx, nil, nil, "m")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty build: err = %v, want ErrInvalidInput", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{testChunk("a", 0, "x")}
	if err := idx.Build(ctx, chunks, [][]float32{{1, 0}}, "m"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if idx.Count() != 0 || idx.Dimensions() != 0 {
		t.Error("Clear must reset in-memory state")
	}
	if _, err := idx.Load(ctx, "m", 2); !errors.Is(err, domain.ErrIndexNotFound) {
		t.Errorf("Load after Clear: err = %v, want ErrIndexNotFound", err)
	}

	// Clearing an empty index is fine.
	if err := idx.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := newTestIndex(t)
	_, err := idx.Search(context.Background(), []float32{1, 0}, 5)
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	chunks := []domain.Chunk{testChunk("a", 0, "x")}
	if err := idx.Build(ctx, chunks, [][]float32{{1, 0}}, "m"); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Search(ctx, []float32{1, 0, 0}, 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
