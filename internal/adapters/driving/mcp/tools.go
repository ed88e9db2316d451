package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question        string `json:"question" jsonschema:"the question to ask about the scriptures"`
	ScriptureFilter string `json:"scripture_filter,omitempty" jsonschema:"restrict search to one scripture collection (default all texts)"`
	TopK            int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Sources      []SourceOutput `json:"sources"`
	SearchMethod string         `json:"search_method"`
	Language     string         `json:"detected_language"`
	Message      string         `json:"message,omitempty"`
}

// SourceOutput represents a single retrieved passage.
type SourceOutput struct {
	Collection  string  `json:"collection"`
	SourceFile  string  `json:"source_file"`
	Chapter     string  `json:"chapter,omitempty"`
	VerseNumber string  `json:"verse_number,omitempty"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
}

// StatsOutput is the output schema for the corpus_stats tool.
type StatsOutput struct {
	Status          string         `json:"status"`
	TotalUnits      int            `json:"total_units"`
	TotalChunks     int            `json:"total_chunks"`
	SearchMethod    string         `json:"search_method"`
	Collections     map[string]int `json:"collections"`
	CorpusStale     bool           `json:"corpus_stale"`
	SampleQuestions []string       `json:"sample_questions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about Hindu scriptures and retrieve relevant passages",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "corpus_stats",
		Description: "Report loaded scripture collections and index state",
	}, s.handleStats)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.AskOptions{
		ScriptureFilter: input.ScriptureFilter,
		TopK:            input.TopK,
	}

	resp, err := s.ports.Assistant.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Sources:      make([]SourceOutput, len(resp.Sources)),
		SearchMethod: resp.SearchMethod,
		Language:     resp.Expanded.DetectedLanguage,
		Message:      resp.Message,
	}

	for i := range resp.Sources {
		src := &resp.Sources[i]
		output.Sources[i] = SourceOutput{
			Collection:  src.Chunk.Unit.CollectionDisplay,
			SourceFile:  src.Chunk.Unit.SourceFile,
			Chapter:     src.Chunk.Unit.Chapter,
			VerseNumber: src.Chunk.Unit.VerseNumber,
			Text:        src.Chunk.Text,
			Score:       src.SimilarityScore,
		}
	}

	return nil, output, nil
}

// handleStats handles the corpus_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Assistant.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	return nil, StatsOutput{
		Status:          stats.Status,
		TotalUnits:      stats.TotalUnits,
		TotalChunks:     stats.TotalChunks,
		SearchMethod:    stats.SearchMethod,
		Collections:     stats.Collections,
		CorpusStale:     stats.CorpusStale,
		SampleQuestions: s.ports.Assistant.SampleQuestions(),
	}, nil
}
