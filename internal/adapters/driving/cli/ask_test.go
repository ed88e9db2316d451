package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

type stubAssistant struct {
	initCalls    int
	forceRebuild bool
	askQuestion  string
	askOpts      domain.AskOptions
	askResp      *domain.AskResponse
	askErr       error
	stats        *domain.Stats
	samples      []string
}

func (s *stubAssistant) Initialize(ctx context.Context, forceRebuild bool) error {
	s.initCalls++
	s.forceRebuild = forceRebuild
	return nil
}

func (s *stubAssistant) Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.AskResponse, error) {
	s.askQuestion = question
	s.askOpts = opts
	if s.askErr != nil {
		return nil, s.askErr
	}
	return s.askResp, nil
}

func (s *stubAssistant) RebuildIndex(ctx context.Context) error { return nil }

func (s *stubAssistant) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.stats != nil {
		return s.stats, nil
	}
	return &domain.Stats{}, nil
}

func (s *stubAssistant) SampleQuestions() []string { return s.samples }

// execute runs the root command with the given stub and args, returning
// captured stdout.
func execute(t *testing.T, stub *stubAssistant, args ...string) (string, error) {
	t.Helper()

	SetAssistant(stub)
	t.Cleanup(func() { SetAssistant(nil) })

	// Flag vars persist between executions, reset to defaults.
	askScripture = domain.AllTextsFilter
	askLanguage = "all"
	askTopK = 0
	askJSON = false
	statsSuggest = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func gitaResponse() *domain.AskResponse {
	return &domain.AskResponse{
		SearchMethod: "embedding",
		Expanded: domain.ExpandedQuery{
			Original:         "What is karma yoga?",
			DetectedLanguage: domain.LanguageEnglish,
		},
		Sources: []domain.SearchResult{
			{
				Chunk: domain.Chunk{
					Text: "You have a right to action alone, never to its fruits.",
					Unit: domain.ScriptureUnit{
						CollectionDisplay: "Bhagavad Gita",
						SourceFile:        "BhagavadGita",
						Chapter:           "2",
						VerseNumber:       "47",
						Content: map[string]string{
							"english": "You have a right to action alone, never to its fruits.",
							"hindi":   "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन",
						},
					},
				},
				SimilarityScore: 0.87,
			},
		},
	}
}

func TestAskText(t *testing.T) {
	stub := &stubAssistant{askResp: gitaResponse()}

	out, err := execute(t, stub, "ask", "What is karma yoga?")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.initCalls)
	assert.False(t, stub.forceRebuild)
	assert.Equal(t, "What is karma yoga?", stub.askQuestion)
	assert.Contains(t, out, "Bhagavad Gita")
	assert.Contains(t, out, "chapter 2, verse 47")
	assert.Contains(t, out, "0.87")
}

func TestAskFlagsReachOptions(t *testing.T) {
	stub := &stubAssistant{askResp: gitaResponse()}

	_, err := execute(t, stub, "ask", "duty",
		"--scripture", "Bhagavad Gita", "--language", "hindi", "--top-k", "3")
	require.NoError(t, err)

	assert.Equal(t, "Bhagavad Gita", stub.askOpts.ScriptureFilter)
	assert.Equal(t, "hindi", stub.askOpts.LanguagePreference)
	assert.Equal(t, 3, stub.askOpts.TopK)
}

func TestAskLanguagePreferenceSelectsField(t *testing.T) {
	stub := &stubAssistant{askResp: gitaResponse()}

	out, err := execute(t, stub, "ask", "duty", "--language", "hindi")
	require.NoError(t, err)

	assert.Contains(t, out, "कर्मण्येवाधिकारस्ते")
}

func TestAskJSON(t *testing.T) {
	stub := &stubAssistant{askResp: gitaResponse()}

	out, err := execute(t, stub, "ask", "--json", "What is karma yoga?")
	require.NoError(t, err)

	var resp askJSONResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "embedding", resp.SearchMethod)
	assert.Equal(t, "english", resp.Language)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Bhagavad Gita", resp.Sources[0].Collection)
	assert.Equal(t, "47", resp.Sources[0].VerseNumber)
	assert.InDelta(t, 0.87, resp.Sources[0].Score, 1e-9)
}

func TestAskNoResultsMessage(t *testing.T) {
	stub := &stubAssistant{askResp: &domain.AskResponse{Message: domain.NoResultsMessage}}

	out, err := execute(t, stub, "ask", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No relevant passages")
}

func TestAskPropagatesError(t *testing.T) {
	stub := &stubAssistant{askErr: domain.ErrInvalidInput}

	_, err := execute(t, stub, "ask", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
