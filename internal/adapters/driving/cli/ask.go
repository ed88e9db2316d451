package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
)

var (
	askScripture string
	askLanguage  string
	askTopK      int
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question of the scripture corpus",
	Long: `Retrieves the passages most relevant to a question.

Questions may be in English, Hindi or Sanskrit:
  shastra ask "What is dharma?"
  shastra ask "धर्म क्या है?"
  shastra ask --scripture "Bhagavad Gita" "What does Krishna teach about duty?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askScripture, "scripture", "s", domain.AllTextsFilter, "restrict to one collection")
	askCmd.Flags().StringVarP(&askLanguage, "language", "l", "all", "preferred content language (all, english, hindi, sanskrit)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "maximum passages to return")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	assistant, err := ensureAssistant(ctx)
	if err != nil {
		return err
	}
	if err := assistant.Initialize(ctx, false); err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	resp, err := assistant.Ask(ctx, args[0], domain.AskOptions{
		ScriptureFilter:    askScripture,
		LanguagePreference: askLanguage,
		TopK:               askTopK,
	})
	if err != nil {
		return err
	}

	if askJSON {
		return outputAskJSON(cmd, resp)
	}
	return outputAskText(cmd, resp)
}

// askJSONResponse is the stable JSON shape of an ask response.
type askJSONResponse struct {
	Question     string           `json:"question"`
	Language     string           `json:"language"`
	SearchMethod string           `json:"search_method"`
	Message      string           `json:"message,omitempty"`
	Sources      []askJSONSource  `json:"sources"`
}

type askJSONSource struct {
	Collection  string  `json:"collection"`
	SourceFile  string  `json:"source_file"`
	Chapter     string  `json:"chapter,omitempty"`
	VerseNumber string  `json:"verse_number,omitempty"`
	Speaker     string  `json:"speaker,omitempty"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
}

func outputAskJSON(cmd *cobra.Command, resp *domain.AskResponse) error {
	out := askJSONResponse{
		Question:     resp.Expanded.Original,
		Language:     resp.Expanded.DetectedLanguage,
		SearchMethod: resp.SearchMethod,
		Message:      resp.Message,
		Sources:      make([]askJSONSource, 0, len(resp.Sources)),
	}
	for i := range resp.Sources {
		src := &resp.Sources[i]
		out.Sources = append(out.Sources, askJSONSource{
			Collection:  src.Chunk.Unit.CollectionDisplay,
			SourceFile:  src.Chunk.Unit.SourceFile,
			Chapter:     src.Chunk.Unit.Chapter,
			VerseNumber: src.Chunk.Unit.VerseNumber,
			Speaker:     src.Chunk.Unit.Speaker,
			Text:        src.Chunk.Text,
			Score:       src.SimilarityScore,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, resp *domain.AskResponse) error {
	if resp.Message != "" {
		cmd.Println(resp.Message)
		return nil
	}

	cmd.Printf("%d passages (%s search)\n\n", len(resp.Sources), resp.SearchMethod)
	for i := range resp.Sources {
		src := &resp.Sources[i]
		unit := &src.Chunk.Unit

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, unit.CollectionDisplay, src.SimilarityScore)
		if ref := formatReference(unit); ref != "" {
			cmd.Printf("      %s\n", ref)
		}
		cmd.Printf("      %s\n", displayText(src, askLanguage))
		cmd.Println()
	}
	return nil
}

// formatReference builds the "chapter 2, verse 47" style citation line.
func formatReference(unit *domain.ScriptureUnit) string {
	ref := ""
	if unit.Chapter != "" {
		ref = "chapter " + unit.Chapter
	}
	if unit.VerseNumber != "" {
		if ref != "" {
			ref += ", "
		}
		ref += "verse " + unit.VerseNumber
	}
	if unit.Speaker != "" {
		if ref != "" {
			ref += ", "
		}
		ref += "spoken by " + unit.Speaker
	}
	return ref
}

// displayText honours the language preference when the unit carries the
// requested field, falling back to the chunk text.
func displayText(src *domain.SearchResult, language string) string {
	if language != "" && language != "all" {
		if v := src.Chunk.Unit.Field(language); v != "" {
			return v
		}
	}
	return src.Chunk.Text
}
