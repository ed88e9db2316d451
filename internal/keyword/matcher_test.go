package keyword

import (
	"testing"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/textnorm"
)

func chunk(id, display, text string) domain.Chunk {
	return domain.Chunk{
		Unit: domain.ScriptureUnit{
			ID:                id,
			CollectionDisplay: display,
			Content:           map[string]string{"text": text},
		},
		Text:       text,
		SearchText: textnorm.FoldCase(text),
	}
}

func TestSearchRanksByRelevance(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("a", "Bhagavad Gita", "dharma is the path of righteousness"),
		chunk("b", "Bhagavad Gita", "dharma and karma guide all action"),
		chunk("c", "Ramayana", "the monkey army crossed the ocean"),
	}

	m := NewMatcher()
	results := m.Search(chunks, []string{"dharma", "karma"}, domain.AllTextsFilter, 5)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Unit.ID != "b" {
		t.Errorf("best result = %q, want b", results[0].Chunk.Unit.ID)
	}
	// b: both keywords whole-word = (2 + 1.0) / 2 = 1.5
	if results[0].SimilarityScore != 1.5 {
		t.Errorf("score = %v, want 1.5", results[0].SimilarityScore)
	}
	// a: only dharma = (1 + 0.5) / 2 = 0.75
	if results[1].SimilarityScore != 0.75 {
		t.Errorf("score = %v, want 0.75", results[1].SimilarityScore)
	}
	if results[0].MatchCount != 2 || results[1].MatchCount != 1 {
		t.Errorf("match counts = %d, %d", results[0].MatchCount, results[1].MatchCount)
	}
}

func TestSearchSubstringWithoutWholeWordBonus(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("sub", "Bhagavad Gita", "the adharmic act was condemned"),
		chunk("whole", "Bhagavad Gita", "dharma protects those who protect it"),
	}

	results := NewMatcher().Search(chunks, []string{"dharma"}, domain.AllTextsFilter, 5)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Whole-word match earns the 0.5 bonus, substring-only does not.
	if results[0].Chunk.Unit.ID != "whole" || results[0].SimilarityScore != 1.5 {
		t.Errorf("best = %q score %v", results[0].Chunk.Unit.ID, results[0].SimilarityScore)
	}
	if results[1].Chunk.Unit.ID != "sub" || results[1].SimilarityScore != 1.0 {
		t.Errorf("second = %q score %v", results[1].Chunk.Unit.ID, results[1].SimilarityScore)
	}
}

func TestSearchScriptureFilter(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("gita", "Bhagavad Gita", "dharma on the battlefield"),
		chunk("valmiki", "Valmiki Ramayana", "dharma in exile"),
	}

	results := NewMatcher().Search(chunks, []string{"dharma"}, "Ramayana", 5)

	if len(results) != 1 || results[0].Chunk.Unit.ID != "valmiki" {
		t.Fatalf("filter should keep only the Ramayana chunk, got %v", results)
	}
}

func TestSearchNoKeywords(t *testing.T) {
	chunks := []domain.Chunk{chunk("a", "Bhagavad Gita", "dharma")}
	if results := NewMatcher().Search(chunks, nil, domain.AllTextsFilter, 5); results != nil {
		t.Errorf("expected nil results for empty keywords, got %v", results)
	}
}

func TestSearchExcludesZeroScore(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("a", "Bhagavad Gita", "an unrelated passage about rivers"),
	}
	if results := NewMatcher().Search(chunks, []string{"dharma"}, domain.AllTextsFilter, 5); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestSearchSkipsEmptySearchText(t *testing.T) {
	empty := chunk("empty", "Bhagavad Gita", "   ")
	empty.SearchText = "   "
	chunks := []domain.Chunk{empty, chunk("ok", "Bhagavad Gita", "dharma")}

	results := NewMatcher().Search(chunks, []string{"dharma"}, domain.AllTextsFilter, 5)
	if len(results) != 1 || results[0].Chunk.Unit.ID != "ok" {
		t.Fatalf("blank search text must be skipped, got %v", results)
	}
}

func TestSearchTopK(t *testing.T) {
	var chunks []domain.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, chunk("c", "Bhagavad Gita", "dharma"))
	}

	results := NewMatcher().Search(chunks, []string{"dharma"}, domain.AllTextsFilter, 3)
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestSearchStableTieOrder(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("first", "Bhagavad Gita", "dharma"),
		chunk("second", "Bhagavad Gita", "dharma"),
	}

	results := NewMatcher().Search(chunks, []string{"dharma"}, domain.AllTextsFilter, 5)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Unit.ID != "first" || results[1].Chunk.Unit.ID != "second" {
		t.Error("equal scores must preserve chunk order")
	}
}

func TestSearchDevanagariKeywords(t *testing.T) {
	chunks := []domain.Chunk{
		chunk("dev", "Bhagavad Gita", "धर्मो रक्षति रक्षितः"),
		chunk("eng", "Bhagavad Gita", "righteousness protects"),
	}

	results := NewMatcher().Search(chunks, []string{"धर्म"}, domain.AllTextsFilter, 5)
	if len(results) != 1 || results[0].Chunk.Unit.ID != "dev" {
		t.Fatalf("expected the Devanagari chunk, got %v", results)
	}
	// Substring hit inside धर्मो, no whole-word bonus.
	if results[0].SimilarityScore != 1.0 {
		t.Errorf("score = %v, want 1.0", results[0].SimilarityScore)
	}
}
