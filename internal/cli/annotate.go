package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rubisub/rubisub/internal/annotate"
	"github.com/rubisub/rubisub/internal/config"
	"github.com/rubisub/rubisub/internal/subtitle"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [subtitle_file]",
	Short: "Insert furigana readings into an SRT file using an LLM",
	Long: `Annotate kanji in an SRT file with inline furigana readings using an LLM
provider, producing the 漢字(かんじ) syntax that 'convert' renders as ruby
text. Annotation and rendering are deliberately separate steps so generated
readings can be reviewed or corrected before conversion.

Examples:
  rubisub annotate episode01.srt
  rubisub annotate episode01.srt --provider anthropic --concurrency 5
  rubisub annotate episode01.srt --model gemini-2.5-pro -o annotated.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().
		StringP("provider", "p", "gemini", "Annotation provider (gemini, openai, anthropic)")
	annotateCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set the provider's env var)")
	annotateCmd.Flags().String("model", "", "Model to use (provider default if empty)")
	annotateCmd.Flags().Int("batch-size", 0, "Captions per API request (default 50)")
	annotateCmd.Flags().Int("concurrency", 3, "Number of parallel API requests")
	annotateCmd.Flags().String("prompt", "", "Additional instructions for the model")
}

func apiKeyEnvVar(provider annotate.Provider) string {
	switch provider {
	case annotate.ProviderGemini:
		return "GEMINI_API_KEY"
	case annotate.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case annotate.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := cmd.Context()

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("provider") && cfg.Annotate.Provider != "" {
			providerStr = cfg.Annotate.Provider
		}
		if model == "" {
			model = cfg.Annotate.Model
		}
		if batchSize == 0 {
			batchSize = cfg.Annotate.BatchSize
		}
		if !cmd.Flags().Changed("concurrency") && cfg.Annotate.Concurrency > 0 {
			concurrency = cfg.Annotate.Concurrency
		}
	}

	provider := annotate.Provider(strings.ToLower(providerStr))
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key or set %s",
			apiKeyEnvVar(provider),
		)
	}

	if outputPath == "" {
		outputPath = replaceExt(inputPath, "") + ".furigana.srt"
	}

	file, err := subtitle.Open(inputPath)
	if err != nil {
		return err
	}
	entries := file.Subtitle().Entries

	var items []annotate.Item
	for i, entry := range entries {
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}
		items = append(items, annotate.Item{Index: i, Text: entry.Text})
	}
	if len(items) == 0 {
		return fmt.Errorf("no caption text found in %s", inputPath)
	}

	logger.Infow("Annotating subtitles",
		"input", inputPath,
		"output", outputPath,
		"provider", provider,
		"captions", len(items),
		"concurrency", concurrency,
	)

	annotator, err := annotate.Factory(ctx, provider, apiKey, annotate.Options{
		Model:     model,
		Prompt:    prompt,
		BatchSize: batchSize,
	})
	if err != nil {
		return err
	}

	var results []annotate.Result
	if concurrent, ok := annotator.(annotate.ConcurrentAnnotator); ok && concurrency > 1 {
		results, err = concurrent.AnnotateWithConcurrency(ctx, items, concurrency)
	} else {
		results, err = annotator.Annotate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}

	updated := 0
	for _, result := range results {
		if result.Index < 0 || result.Index >= len(entries) {
			logger.Warnw("Skipping invalid result index", "index", result.Index)
			continue
		}
		if result.Text == "" {
			continue
		}
		if err := file.SetText(result.Index, result.Text); err != nil {
			return err
		}
		updated++
	}

	if err := file.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Infow("Annotation complete",
		"output", outputPath,
		"updated", updated,
	)
	return nil
}
