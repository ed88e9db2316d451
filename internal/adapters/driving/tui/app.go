// Package tui provides the interactive terminal interface for asking
// questions against the scripture corpus. It follows the Elm
// architecture via Bubbletea.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

// askCompleted carries a finished ask round trip.
type askCompleted struct {
	resp *domain.AskResponse
}

// askFailed carries an ask error.
type askFailed struct {
	err error
}

// App is the ask view. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input    textinput.Model
	results  viewport.Model
	spin     spinner.Model
	filters  []string
	filterIx int

	asking bool
	ready  bool
	err    error

	width  int
	height int
}

// NewApp creates the ask view. Filter choices come from the loaded
// collections plus the all-texts default.
func NewApp(ctx context.Context, ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about dharma, karma, devotion..."
	ti.Focus()
	ti.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		ports:   ports,
		ctx:     ctx,
		styles:  DefaultStyles(),
		input:   ti,
		results: viewport.New(80, 20),
		spin:    sp,
		filters: []string{domain.AllTextsFilter},
		width:   80,
		height:  24,
	}

	if stats, err := ports.Assistant.Stats(ctx); err == nil {
		names := make([]string, 0, len(stats.Collections))
		for name := range stats.Collections {
			names = append(names, name)
		}
		sort.Strings(names)
		app.filters = append(app.filters, names...)
	}

	return app, nil
}

// Run starts the TUI event loop and blocks until the user quits.
func Run(ctx context.Context, ports *Ports) error {
	app, err := NewApp(ctx, ports)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

// Init initialises the view.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		a.results.Width = msg.Width
		a.results.Height = msg.Height - 7
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case askCompleted:
		a.asking = false
		a.err = nil
		a.results.SetContent(a.renderResponse(msg.resp))
		a.results.GotoTop()
		return a, nil

	case askFailed:
		a.asking = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.asking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	cmds = append(cmds, inputCmd)

	var vpCmd tea.Cmd
	a.results, vpCmd = a.results.Update(msg)
	cmds = append(cmds, vpCmd)

	return a, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit

	case tea.KeyTab:
		a.filterIx = (a.filterIx + 1) % len(a.filters)
		return a, nil

	case tea.KeyEnter:
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.asking {
			return a, nil
		}
		a.asking = true
		a.err = nil
		return a, tea.Batch(a.spin.Tick, a.ask(question))
	}

	var cmds []tea.Cmd
	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	cmds = append(cmds, inputCmd)

	var vpCmd tea.Cmd
	a.results, vpCmd = a.results.Update(msg)
	cmds = append(cmds, vpCmd)

	return a, tea.Batch(cmds...)
}

// ask runs the question against the assistant off the UI loop.
func (a *App) ask(question string) tea.Cmd {
	filter := a.filters[a.filterIx]
	return func() tea.Msg {
		resp, err := a.ports.Assistant.Ask(a.ctx, question, domain.AskOptions{
			ScriptureFilter: filter,
		})
		if err != nil {
			return askFailed{err: err}
		}
		return askCompleted{resp: resp}
	}
}

// renderResponse formats a completed ask round trip for the viewport.
func (a *App) renderResponse(resp *domain.AskResponse) string {
	if resp.Message != "" {
		return a.styles.Muted.Render(resp.Message)
	}

	var b strings.Builder
	b.WriteString(a.styles.Muted.Render(
		fmt.Sprintf("%d passages via %s search", len(resp.Sources), resp.SearchMethod)))
	b.WriteString("\n\n")

	for i := range resp.Sources {
		src := &resp.Sources[i]
		unit := &src.Chunk.Unit

		header := fmt.Sprintf("[%d] %s", i+1, unit.CollectionDisplay)
		b.WriteString(a.styles.Source.Render(header))

		var meta []string
		if unit.Chapter != "" {
			meta = append(meta, "chapter "+unit.Chapter)
		}
		if unit.VerseNumber != "" {
			meta = append(meta, "verse "+unit.VerseNumber)
		}
		meta = append(meta, fmt.Sprintf("score %.2f", src.SimilarityScore))
		b.WriteString(" " + a.styles.SourceMeta.Render("("+strings.Join(meta, ", ")+")"))
		b.WriteString("\n")
		b.WriteString(a.styles.Text.Render(src.Chunk.Text))
		b.WriteString("\n\n")
	}

	return b.String()
}

// View renders the full screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Shastra"))
	b.WriteString("  ")
	b.WriteString(a.styles.Filter.Render("[" + a.filters[a.filterIx] + "]"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputBox.Width(a.width - 4).Render(a.input.View()))
	b.WriteString("\n")

	switch {
	case a.asking:
		b.WriteString(a.spin.View() + a.styles.Muted.Render(" searching..."))
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	default:
		b.WriteString(a.results.View())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("enter ask · tab filter · esc quit"))
	return b.String()
}
