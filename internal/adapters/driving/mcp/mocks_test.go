package mcp

import (
	"context"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// mockAssistant is a mock implementation of driving.Assistant.
type mockAssistant struct {
	response  *domain.AskResponse
	stats     *domain.Stats
	questions []string
	err       error
}

func (m *mockAssistant) Initialize(_ context.Context, _ bool) error {
	return m.err
}

func (m *mockAssistant) Ask(
	_ context.Context, _ string, _ domain.AskOptions,
) (*domain.AskResponse, error) {
	return m.response, m.err
}

func (m *mockAssistant) RebuildIndex(_ context.Context) error {
	return m.err
}

func (m *mockAssistant) Stats(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

func (m *mockAssistant) SampleQuestions() []string {
	return m.questions
}
