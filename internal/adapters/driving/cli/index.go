package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index management commands",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the embedding index from the corpus",
	Long: `Discards any persisted index, reloads the corpus and regenerates
all embeddings. Run this after corpus files change or after switching
embedding models.`,
	RunE: runIndexRebuild,
}

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	assistant, err := ensureAssistant(ctx)
	if err != nil {
		return err
	}
	if err := assistant.Initialize(ctx, true); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	stats, err := assistant.Stats(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Indexed %d chunks from %d units (%s search)\n",
		stats.TotalChunks, stats.TotalUnits, stats.SearchMethod)
	return nil
}
