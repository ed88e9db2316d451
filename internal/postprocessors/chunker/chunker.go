// Package chunker splits scripture unit text into overlapping,
// boundary-aware chunks sized for embedding models.
package chunker

import (
	"strings"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/textnorm"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// boundarySearchWindow is how far (in characters) the chunker looks around
// a tentative cut for a sentence terminator.
const boundarySearchWindow = 100

// spaceSearchWindow is how far the chunker looks backward for a plain space
// when no sentence terminator is near.
const spaceSearchWindow = 50

// Processor splits unit text into chunks. Chunking is deterministic for a
// fixed (chunkSize, overlap) configuration.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Process splits one unit's text into chunks carrying the unit's metadata.
// Text no longer than the chunk size comes back as a single chunk; empty
// text produces no chunks.
func (p *Processor) Process(unit domain.ScriptureUnit) []domain.Chunk {
	text := strings.TrimSpace(unit.Text())
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= p.chunkSize {
		return []domain.Chunk{newChunk(unit, 0, text)}
	}

	var chunks []domain.Chunk
	start := 0
	id := 0

	for start < len(runes) {
		end := start + p.chunkSize
		last := false
		if end >= len(runes) {
			end = len(runes)
			last = true
		} else {
			end = adjustBoundary(runes, start, end)
			if end >= len(runes) {
				end = len(runes)
				last = true
			}
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, newChunk(unit, id, piece))
			id++
		}

		if last {
			break
		}
		// A boundary adjustment can land close behind start when the
		// window is small; skip the overlap then so the window always
		// advances.
		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

func newChunk(unit domain.ScriptureUnit, id int, text string) domain.Chunk {
	return domain.Chunk{
		Unit:       unit,
		ChunkID:    id,
		Text:       text,
		SearchText: textnorm.FoldCase(text),
	}
}

// adjustBoundary moves a tentative cut position onto a natural break:
// backward to the nearest sentence terminator, else forward to one, else
// backward to a space. When nothing is near, the hard cut stands (it may
// split a word, an acceptable degraded case).
func adjustBoundary(runes []rune, start, end int) int {
	low := end - boundarySearchWindow
	if low < start {
		low = start
	}
	for i := end - 1; i >= low; i-- {
		if isTerminator(runes[i]) {
			return i + 1
		}
	}

	high := end + boundarySearchWindow
	if high > len(runes) {
		high = len(runes)
	}
	for i := end; i < high; i++ {
		if isTerminator(runes[i]) {
			return i + 1
		}
	}

	low = end - spaceSearchWindow
	if low < start {
		low = start
	}
	for i := end - 1; i >= low; i-- {
		if runes[i] == ' ' {
			return i + 1
		}
	}

	return end
}

// isTerminator reports whether a rune ends a sentence in any of the corpus
// scripts, including the Devanagari danda marks.
func isTerminator(r rune) bool {
	switch r {
	case '।', '॥', '.', '!', '?', '\n':
		return true
	}
	return false
}
