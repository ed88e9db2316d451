package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/shastra-labs/shastra-cli/internal/adapters/driving/tui"
	"github.com/shastra-labs/shastra-cli/internal/logger"
	"github.com/shastra-labs/shastra-cli/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Controls:
  Enter - Ask the typed question
  Tab   - Cycle the scripture filter
  Esc   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery to get stack traces out of the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()
	assistant, err := ensureAssistant(ctx)
	if err != nil {
		return err
	}
	if err := assistant.Initialize(ctx, false); err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	// The TUI is long-running, so flag corpus changes while it is open.
	if staler, ok := assistant.(interface{ MarkCorpusStale() }); ok && configStore != nil {
		cfg := configStore.Config().Corpus
		if cfg.Source == "" || cfg.Source == "filesystem" {
			w, err := watcher.New(cfg.Path, staler.MarkCorpusStale)
			if err != nil {
				logger.Warn("Corpus watcher disabled: %v", err)
			} else {
				w.Start()
				defer w.Close()
			}
		}
	}

	return tui.Run(ctx, &tui.Ports{Assistant: assistant})
}
