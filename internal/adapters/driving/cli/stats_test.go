package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

func TestStatsOutput(t *testing.T) {
	stub := &stubAssistant{
		stats: &domain.Stats{
			Status:             domain.StatusReady,
			TotalUnits:         700,
			TotalChunks:        745,
			EmbeddingDimension: 768,
			SearchMethod:       "embedding",
			Collections: map[string]int{
				"Bhagavad Gita":    700,
			},
		},
	}

	out, err := execute(t, stub, "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "700")
	assert.Contains(t, out, "745")
	assert.Contains(t, out, "Bhagavad Gita")
	assert.Contains(t, out, "768")
}

func TestStatsStaleHint(t *testing.T) {
	stub := &stubAssistant{
		stats: &domain.Stats{Status: domain.StatusReady, CorpusStale: true},
	}

	out, err := execute(t, stub, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "index rebuild")
}

func TestStatsSuggest(t *testing.T) {
	stub := &stubAssistant{
		stats:   &domain.Stats{Status: domain.StatusReady},
		samples: []string{"What is dharma?", "धर्म क्या है?"},
	}

	out, err := execute(t, stub, "stats", "--suggest")
	require.NoError(t, err)
	assert.Contains(t, out, "What is dharma?")
	assert.Contains(t, out, "धर्म क्या है?")
}

func TestIndexRebuildForcesRebuild(t *testing.T) {
	stub := &stubAssistant{
		stats: &domain.Stats{TotalUnits: 3, TotalChunks: 4, SearchMethod: "keyword"},
	}

	out, err := execute(t, stub, "index", "rebuild")
	require.NoError(t, err)

	assert.True(t, stub.forceRebuild)
	assert.Contains(t, out, "4 chunks")
	assert.Contains(t, out, "3 units")
}
