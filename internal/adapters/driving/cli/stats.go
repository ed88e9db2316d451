package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsSuggest bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsSuggest, "suggest", false, "also print sample questions")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	assistant, err := ensureAssistant(ctx)
	if err != nil {
		return err
	}
	if err := assistant.Initialize(ctx, false); err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	stats, err := assistant.Stats(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Status:        %s\n", stats.Status)
	cmd.Printf("Units:         %d\n", stats.TotalUnits)
	cmd.Printf("Chunks:        %d\n", stats.TotalChunks)
	cmd.Printf("Search method: %s\n", stats.SearchMethod)
	if stats.EmbeddingDimension > 0 {
		cmd.Printf("Dimensions:    %d\n", stats.EmbeddingDimension)
	}
	if stats.CorpusStale {
		cmd.Println("Corpus files changed since the last build, run 'shastra index rebuild'.")
	}

	if len(stats.Collections) > 0 {
		cmd.Println("\nCollections:")
		names := make([]string, 0, len(stats.Collections))
		for name := range stats.Collections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %-24s %d units\n", name, stats.Collections[name])
		}
	}

	if statsSuggest {
		cmd.Println("\nTry asking:")
		for _, q := range assistant.SampleQuestions() {
			cmd.Printf("  %s\n", q)
		}
	}
	return nil
}
