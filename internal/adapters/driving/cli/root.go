// Package cli wires the cobra command tree for the shastra binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shastra-labs/shastra-cli/internal/adapters/driven/config/file"
	"github.com/shastra-labs/shastra-cli/internal/adapters/driven/embedding/ollama"
	"github.com/shastra-labs/shastra-cli/internal/adapters/driven/embedding/openai"
	"github.com/shastra-labs/shastra-cli/internal/adapters/driven/index/flat"
	"github.com/shastra-labs/shastra-cli/internal/connectors/drive"
	"github.com/shastra-labs/shastra-cli/internal/connectors/filesystem"
	"github.com/shastra-labs/shastra-cli/internal/connectors/github"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driving"
	"github.com/shastra-labs/shastra-cli/internal/core/services"
	"github.com/shastra-labs/shastra-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string

	// assistantService is built lazily by ensureAssistant. Tests inject
	// their own via SetAssistant.
	assistantService driving.Assistant
	configStore      *file.Store
	indexCloser      interface{ Close() error }
)

var rootCmd = &cobra.Command{
	Use:   "shastra",
	Short: "Ask questions of Hindu scripture corpora",
	Long: `Shastra retrieves relevant passages from Hindu scripture collections
such as the Bhagavad Gita, Ramcharitmanas and Valmiki Ramayana.

Questions may be asked in English, Hindi or Sanskrit. Retrieval uses
embedding similarity when an embedding provider is configured and falls
back to multilingual keyword matching otherwise.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.shastra)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	if indexCloser != nil {
		indexCloser.Close()
	}
}

// SetAssistant overrides the wired assistant. Used by tests.
func SetAssistant(a driving.Assistant) {
	assistantService = a
}

// ensureAssistant wires the assistant from configuration on first use.
func ensureAssistant(ctx context.Context) (driving.Assistant, error) {
	if assistantService != nil {
		return assistantService, nil
	}

	store, err := file.NewStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	configStore = store
	cfg := store.Config()

	source, err := buildSource(ctx, cfg.Corpus)
	if err != nil {
		return nil, err
	}

	index, err := flat.NewIndex(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	indexCloser = index

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	assistantService = services.NewAssistantService(source, index, embedder,
		services.WithChunking(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap),
		services.WithTopK(cfg.Retrieval.TopK),
		services.WithSimilarityThreshold(cfg.Retrieval.Threshold),
	)
	return assistantService, nil
}

// buildSource selects the corpus source from configuration.
func buildSource(ctx context.Context, cfg file.CorpusConfig) (driven.CorpusSource, error) {
	switch cfg.Source {
	case "", "filesystem":
		return filesystem.NewSource(cfg.Path), nil

	case "github":
		return github.NewSource(github.Config{
			Owner: cfg.GitHub.Owner,
			Repo:  cfg.GitHub.Repo,
			Path:  cfg.GitHub.Path,
			Ref:   cfg.GitHub.Ref,
			Token: cfg.GitHub.Token,
		}), nil

	case "drive":
		return drive.NewSource(ctx, drive.Config{
			FolderID: cfg.Drive.FolderID,
			APIKey:   cfg.Drive.APIKey,
			Token:    cfg.Drive.Token,
		})

	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Source)
	}
}

// buildEmbedder selects the embedding provider from configuration.
// An empty provider means keyword-only mode.
func buildEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "":
		return nil, nil

	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil

	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
