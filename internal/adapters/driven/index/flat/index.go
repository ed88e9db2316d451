// Package flat provides an exact inner-product vector index backed by
// SQLite. Vectors are L2-normalized on insert so inner product equals
// cosine similarity, and every query scans the full matrix. Search is
// exact: ranking ties keep insertion order.
package flat

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shastra-labs/shastra-cli/internal/adapters/driven/index/flat/migrations"
	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
)

// Index is a flat vector index persisted to SQLite.
type Index struct {
	db   *sql.DB
	path string

	mu      sync.RWMutex
	chunks  []domain.Chunk
	vectors [][]float32
	dims    int
	model   string
}

var _ driven.VectorIndex = (*Index)(nil)

// NewIndex opens (or creates) the index database in the given data
// directory. If dataDir is empty, defaults to ~/.shastra/data.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shastra", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode keeps reads open while a rebuild writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:   db,
		path: dbPath,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Path returns the database file path.
func (idx *Index) Path() string {
	return idx.path
}

// Build replaces the index with the given chunks and vectors. The whole
// replacement runs in one transaction so readers never observe a
// half-built index. A fresh build ID is recorded with the model name so
// Load can verify compatibility later.
func (idx *Index) Build(ctx context.Context, chunks []domain.Chunk, vectors [][]float32, model string) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrInvalidInput, len(chunks), len(vectors))
	}
	if len(vectors) == 0 {
		return fmt.Errorf("%w: nothing to index", domain.ErrInvalidInput)
	}

	dims := len(vectors[0])
	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dims {
			return fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				domain.ErrInvalidInput, i, len(v), dims)
		}
		normalized[i] = normalize(v)
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("clearing meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO index_chunks
			(position, unit_id, collection, collection_display, source_file,
			 chunk_id, text, search_text, unit_json, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		unitJSON, err := json.Marshal(chunk.Unit)
		if err != nil {
			return fmt.Errorf("marshalling unit: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, i,
			chunk.Unit.ID, chunk.Unit.Collection, chunk.Unit.CollectionDisplay,
			chunk.Unit.SourceFile, chunk.ChunkID, chunk.Text, chunk.SearchText,
			string(unitJSON), float32SliceToBytes(normalized[i])); err != nil {
			return fmt.Errorf("saving chunk %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, build_id, model, dimensions, chunk_count, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
	`, uuid.NewString(), model, dims, len(chunks), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	idx.mu.Lock()
	idx.chunks = append([]domain.Chunk(nil), chunks...)
	idx.vectors = normalized
	idx.dims = dims
	idx.model = model
	idx.mu.Unlock()

	return nil
}

// Load restores a persisted index into memory and returns its chunk
// metadata. The stored model and dimensions must match the arguments,
// otherwise the index was built for a different embedding configuration
// and must be rebuilt.
func (idx *Index) Load(ctx context.Context, model string, dimensions int) ([]domain.Chunk, error) {
	var storedModel string
	var storedDims, count int
	row := idx.db.QueryRowContext(ctx,
		"SELECT model, dimensions, chunk_count FROM index_meta WHERE id = 1")
	if err := row.Scan(&storedModel, &storedDims, &count); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("reading index meta: %w", err)
	}

	if storedModel != model || storedDims != dimensions {
		return nil, fmt.Errorf("%w: stored %s/%d, configured %s/%d",
			domain.ErrIndexIncompatible, storedModel, storedDims, model, dimensions)
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT unit_json, chunk_id, text, search_text, embedding
		FROM index_chunks ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	chunks := make([]domain.Chunk, 0, count)
	vectors := make([][]float32, 0, count)
	for rows.Next() {
		var unitJSON string
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&unitJSON, &chunk.ChunkID, &chunk.Text, &chunk.SearchText, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(unitJSON), &chunk.Unit); err != nil {
			return nil, fmt.Errorf("unmarshaling unit: %w", err)
		}

		vec := bytesToFloat32Slice(blob)
		if len(vec) != dimensions {
			return nil, fmt.Errorf("%w: stored vector has %d dimensions, expected %d",
				domain.ErrIndexIncompatible, len(vec), dimensions)
		}
		chunks = append(chunks, chunk)
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	if len(chunks) == 0 {
		return nil, domain.ErrIndexNotFound
	}

	idx.mu.Lock()
	idx.chunks = chunks
	idx.vectors = vectors
	idx.dims = dimensions
	idx.model = model
	idx.mu.Unlock()

	return chunks, nil
}

// Search scans the full matrix and returns the k best chunks by cosine
// similarity, best first. Equal scores keep insertion order.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return nil, domain.ErrIndexNotFound
	}
	if len(query) != idx.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(query), idx.dims)
	}
	if k <= 0 {
		return nil, nil
	}

	q := normalize(query)
	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{ChunkIndex: i, Score: dot(q, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of indexed vectors.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimensions returns the vector size of the loaded index, 0 if empty.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dims
}

// Clear drops the in-memory index and removes the persisted rows. A
// Clear on an already-empty index succeeds.
func (idx *Index) Clear(ctx context.Context) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("clearing meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	idx.mu.Lock()
	idx.chunks = nil
	idx.vectors = nil
	idx.dims = 0
	idx.model = ""
	idx.mu.Unlock()

	return nil
}

// migrate runs all pending migrations.
func (idx *Index) migrate(fsys embed.FS) error {
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := idx.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := idx.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := idx.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// normalize returns an L2-normalized copy of v. A zero vector comes back
// unchanged rather than dividing by zero.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
