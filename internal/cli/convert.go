package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rubisub/rubisub/internal/ass"
	"github.com/rubisub/rubisub/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input]",
	Short: "Convert furigana SRT subtitles to ruby-annotated ASS",
	Long: `Convert an SRT file, or every SRT file in a directory, to ASS with ruby
text. Input text marks readings inline as 漢字(かんじ) and may color spans
with <font color="NAME">...</font> markup.

Modes:
  compact     one event per caption using inline {\rt} ruby tags
  positioned  separate positioned events per base/ruby/underline layer

Examples:
  rubisub convert episode01.srt
  rubisub convert episode01.srt --mode compact -o out.ass
  rubisub convert ./subs --mode positioned --video episode01.mkv
  rubisub convert ./subs --workers 4 --font "Noto Sans JP"`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("mode", "m", "positioned", "Emission mode (compact, positioned)")
	convertCmd.Flags().
		Int("workers", 3, "Number of parallel conversions in directory mode")
	addStyleFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input not found: %s", input)
	}

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := ass.ParseMode(modeStr)
	if err != nil {
		return err
	}

	// configuration problems abort before any file is processed
	spec, err := resolveStyleSpec(cmd)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")

	if !info.IsDir() {
		if outputPath == "" {
			outputPath = replaceExt(input, ".ass")
		}
		if err := convertFile(input, outputPath, spec, mode); err != nil {
			return err
		}
		logger.Infow("Converted subtitle",
			"input", input,
			"output", outputPath,
		)
		return nil
	}

	workers, _ := cmd.Flags().GetInt("workers")
	return convertDirectory(cmd.Context(), input, outputPath, spec, mode, workers)
}

func convertFile(
	inputPath, outputPath string,
	spec ass.StyleSpec,
	mode ass.Mode,
) error {
	file, err := subtitle.Open(inputPath)
	if err != nil {
		return err
	}

	doc, err := ass.Convert(file.Subtitle(), spec, mode)
	if err != nil {
		return err
	}

	return doc.Write(outputPath)
}

// convertDirectory fans per-file conversions out over a worker pool. Each
// file is independent and the style spec is read-only, so no locking is
// needed; cancellation is honored between files only.
func convertDirectory(
	ctx context.Context,
	inputDir, outputDir string,
	spec ass.StyleSpec,
	mode ass.Mode,
	workers int,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if outputDir == "" {
		outputDir = inputDir
	}
	if workers <= 0 {
		workers = 1
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []string
	for _, de := range entries {
		if !de.IsDir() && strings.EqualFold(filepath.Ext(de.Name()), ".srt") {
			inputs = append(inputs, filepath.Join(inputDir, de.Name()))
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no SRT files found in %s", inputDir)
	}

	logger.Infow("Converting directory",
		"input", inputDir,
		"output", outputDir,
		"files", len(inputs),
		"workers", workers,
	)

	work := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i := 0; i < workers && i < len(inputs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input := range work {
				// cancellation is honored between files, never mid-file
				if ctx.Err() != nil {
					continue
				}
				output := filepath.Join(
					outputDir,
					replaceExt(filepath.Base(input), ".ass"),
				)
				if err := convertFile(input, output, spec, mode); err != nil {
					logger.Errorw("Conversion failed",
						"input", input,
						"error", err,
					)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				logger.Infow("Converted subtitle",
					"input", input,
					"output", output,
				)
			}
		}()
	}

dispatch:
	for _, input := range inputs {
		select {
		case <-ctx.Done():
			break dispatch
		case work <- input:
		}
	}
	close(work)
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(inputs))
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
