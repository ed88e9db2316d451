// Package keyword implements lexical retrieval over chunk search text. It
// serves as the fallback path when the embedding service is unavailable
// and needs no index besides the chunks themselves.
package keyword

import (
	"sort"
	"strings"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// Matcher scores chunks against extracted query keywords.
type Matcher struct{}

// NewMatcher creates a keyword matcher.
func NewMatcher() *Matcher { return &Matcher{} }

// Search ranks chunks by keyword overlap. Each keyword found as a
// substring of a chunk's search text counts 1, plus 0.5 when it also
// appears as a whole word. The relevance score is the total divided by
// the number of query keywords, so it stays comparable across queries.
//
// Chunks outside the scripture filter or with no matches are excluded.
// Results are ordered by descending relevance, ties broken by descending
// raw match count, then by chunk order for determinism.
func (m *Matcher) Search(chunks []domain.Chunk, keywords []string, scriptureFilter string, topK int) []domain.SearchResult {
	if len(keywords) == 0 {
		return nil
	}

	var results []domain.SearchResult
	for _, chunk := range chunks {
		if !domain.MatchesFilter(chunk.Unit.CollectionDisplay, scriptureFilter) {
			continue
		}
		searchText := chunk.SearchText
		if strings.TrimSpace(searchText) == "" {
			continue
		}

		words := wordSet(searchText)

		matches := 0
		bonus := 0.0
		for _, kw := range keywords {
			if !strings.Contains(searchText, kw) {
				continue
			}
			matches++
			if _, whole := words[kw]; whole {
				bonus += 0.5
			}
		}

		if matches == 0 {
			continue
		}

		results = append(results, domain.SearchResult{
			Chunk:           chunk,
			SimilarityScore: (float64(matches) + bonus) / float64(len(keywords)),
			MatchCount:      matches,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].MatchCount > results[j].MatchCount
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}
