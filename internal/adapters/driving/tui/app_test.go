package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

type mockAssistant struct {
	askResp  *domain.AskResponse
	askErr   error
	stats    *domain.Stats
	statsErr error
}

func (m *mockAssistant) Initialize(ctx context.Context, forceRebuild bool) error { return nil }

func (m *mockAssistant) Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.AskResponse, error) {
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.askResp, nil
}

func (m *mockAssistant) RebuildIndex(ctx context.Context) error { return nil }

func (m *mockAssistant) Stats(ctx context.Context) (*domain.Stats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

func (m *mockAssistant) SampleQuestions() []string { return nil }

func newTestApp(t *testing.T, assistant *mockAssistant) *App {
	t.Helper()
	app, err := NewApp(context.Background(), &Ports{Assistant: assistant})
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(*App)
}

func TestNewAppRequiresAssistant(t *testing.T) {
	_, err := NewApp(context.Background(), &Ports{})
	assert.ErrorIs(t, err, ErrMissingAssistant)
}

func TestNewAppFilterChoices(t *testing.T) {
	app := newTestApp(t, &mockAssistant{
		stats: &domain.Stats{Collections: map[string]int{
			"Valmiki Ramayana": 1,
			"Bhagavad Gita":    2,
		}},
	})

	assert.Equal(t, []string{domain.AllTextsFilter, "Bhagavad Gita", "Valmiki Ramayana"}, app.filters)
}

func TestNewAppStatsFailureKeepsDefaultFilter(t *testing.T) {
	app := newTestApp(t, &mockAssistant{statsErr: errors.New("not ready")})
	assert.Equal(t, []string{domain.AllTextsFilter}, app.filters)
}

func TestTabCyclesFilters(t *testing.T) {
	app := newTestApp(t, &mockAssistant{
		stats: &domain.Stats{Collections: map[string]int{"Bhagavad Gita": 2}},
	})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, "Bhagavad Gita", app.filters[app.filterIx])

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, domain.AllTextsFilter, app.filters[app.filterIx])
}

func TestEnterWithEmptyInputDoesNotAsk(t *testing.T) {
	app := newTestApp(t, &mockAssistant{stats: &domain.Stats{}})

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.False(t, app.asking)
	assert.Nil(t, cmd)
}

func TestEnterAsksAndRendersResults(t *testing.T) {
	assistant := &mockAssistant{
		stats: &domain.Stats{},
		askResp: &domain.AskResponse{
			SearchMethod: "embedding",
			Sources: []domain.SearchResult{
				{
					Chunk: domain.Chunk{
						Text: "You have a right to action alone",
						Unit: domain.ScriptureUnit{
							CollectionDisplay: "Bhagavad Gita",
							Chapter:           "2",
							VerseNumber:       "47",
						},
					},
					SimilarityScore: 0.87,
				},
			},
		},
	}
	app := newTestApp(t, assistant)
	app.input.SetValue("What is karma yoga?")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.True(t, app.asking)

	// Run the batched command synchronously and feed the ask result back.
	msg := findAskResult(t, cmd)
	model, _ = app.Update(msg)
	app = model.(*App)

	assert.False(t, app.asking)
	view := app.View()
	assert.Contains(t, view, "Bhagavad Gita")
	assert.Contains(t, view, "chapter 2")
	assert.Contains(t, view, "verse 47")
	assert.Contains(t, view, "embedding")
}

func TestAskFailureShowsError(t *testing.T) {
	app := newTestApp(t, &mockAssistant{stats: &domain.Stats{}, askErr: errors.New("backend down")})
	app.input.SetValue("question")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := findAskResult(t, cmd)
	model, _ := app.Update(msg)
	app = model.(*App)

	assert.Error(t, app.err)
	assert.Contains(t, app.View(), "backend down")
}

func TestNoResultsMessageRendered(t *testing.T) {
	app := newTestApp(t, &mockAssistant{stats: &domain.Stats{}})
	content := app.renderResponse(&domain.AskResponse{Message: domain.NoResultsMessage})
	assert.Contains(t, content, "No relevant passages")
}

func TestEscQuits(t *testing.T) {
	app := newTestApp(t, &mockAssistant{stats: &domain.Stats{}})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// findAskResult executes cmd, flattening batches, and returns the first
// askCompleted or askFailed message it produces.
func findAskResult(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case askCompleted, askFailed:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	t.Fatal("no ask result message produced")
	return nil
}
