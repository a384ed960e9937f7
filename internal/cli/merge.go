package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rubisub/rubisub/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [sub1] [sub2]",
	Short: "Merge two subtitle tracks into one",
	Long: `Merge two SRT tracks into a single file, optionally coloring, resizing,
repositioning and time-shifting each track.

With --dir, the two positional arguments are replaced by filename patterns:
every pair of files whose extracted episode numbers match is merged into one
output per episode.

Examples:
  rubisub merge ja.srt en.srt -o merged.srt --color yellow
  rubisub merge ja.srt en.srt --offset2 1.5 --top2
  rubisub merge --dir ./season1 --sub1-pattern '\.ja\.srt$' --sub2-pattern '\.en\.srt$' \
      --sub1-episode 'E(\d+)' --sub2-episode 'E(\d+)'`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String("color", "", "Color name for the first track")
	mergeCmd.Flags().String("color2", "", "Color name for the second track")
	mergeCmd.Flags().Int("size", 0, "Font size override for the first track")
	mergeCmd.Flags().Int("size2", 0, "Font size override for the second track")
	mergeCmd.Flags().Bool("bold", false, "Bold the first track")
	mergeCmd.Flags().Bool("bold2", false, "Bold the second track")
	mergeCmd.Flags().Bool("top", false, "Anchor the first track at the top")
	mergeCmd.Flags().Bool("top2", false, "Anchor the second track at the top")
	mergeCmd.Flags().
		Float64("offset", 0, "Time shift for the first track in seconds")
	mergeCmd.Flags().
		Float64("offset2", 0, "Time shift for the second track in seconds")

	mergeCmd.Flags().String("dir", "", "Directory for episode batch merging")
	mergeCmd.Flags().
		String("sub1-pattern", "", "Filename filter regex for first-track files")
	mergeCmd.Flags().
		String("sub2-pattern", "", "Filename filter regex for second-track files")
	mergeCmd.Flags().String("sub1-episode", `(\d+)`,
		"Episode number capture regex for first-track filenames")
	mergeCmd.Flags().String("sub2-episode", `(\d+)`,
		"Episode number capture regex for second-track filenames")
}

func trackOptions(cmd *cobra.Command, suffix string) merge.TrackOptions {
	color, _ := cmd.Flags().GetString("color" + suffix)
	size, _ := cmd.Flags().GetInt("size" + suffix)
	bold, _ := cmd.Flags().GetBool("bold" + suffix)
	top, _ := cmd.Flags().GetBool("top" + suffix)
	offset, _ := cmd.Flags().GetFloat64("offset" + suffix)

	return merge.TrackOptions{
		Color:  color,
		Size:   size,
		Bold:   bold,
		Top:    top,
		Offset: time.Duration(offset * float64(time.Second)),
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return runMergeDirectory(cmd, dir)
	}

	if len(args) != 2 {
		return fmt.Errorf("merge needs two subtitle files (or --dir for batch mode)")
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = replaceExt(args[0], "") + "_merged.srt"
	}

	if err := mergePair(cmd, args[0], args[1], outputPath); err != nil {
		return err
	}

	logger.Infow("Merged subtitles",
		"sub1", args[0],
		"sub2", args[1],
		"output", outputPath,
	)
	return nil
}

func mergePair(cmd *cobra.Command, sub1, sub2, output string) error {
	merger := merge.NewMerger()
	if err := merger.Add(sub1, trackOptions(cmd, "")); err != nil {
		return err
	}
	if err := merger.Add(sub2, trackOptions(cmd, "2")); err != nil {
		return err
	}
	return merger.WriteTo(output)
}

func runMergeDirectory(cmd *cobra.Command, dir string) error {
	sub1Pattern, _ := cmd.Flags().GetString("sub1-pattern")
	sub2Pattern, _ := cmd.Flags().GetString("sub2-pattern")
	if sub1Pattern == "" || sub2Pattern == "" {
		return fmt.Errorf("--dir mode requires --sub1-pattern and --sub2-pattern")
	}
	sub1Episode, _ := cmd.Flags().GetString("sub1-episode")
	sub2Episode, _ := cmd.Flags().GetString("sub2-episode")

	pairs, skipped, err := merge.FindPairs(dir, merge.PairPatterns{
		Sub1Filter:  sub1Pattern,
		Sub2Filter:  sub2Pattern,
		Sub1Episode: sub1Episode,
		Sub2Episode: sub2Episode,
	})
	if err != nil {
		return err
	}

	for _, s := range skipped {
		logger.Warnw("Skipping file", "reason", s)
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no episode pairs found in %s", dir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = dir
	}

	rows := make([][]string, 0, len(pairs))
	outputs := make([]string, 0, len(pairs))
	for _, p := range pairs {
		output := filepath.Join(outputDir, fmt.Sprintf("episode_%s_merged.srt", p.Episode))
		outputs = append(outputs, output)
		rows = append(rows, []string{
			p.Episode,
			filepath.Base(p.Sub1),
			filepath.Base(p.Sub2),
			filepath.Base(output),
		})
	}
	fmt.Println(renderTable(
		[]string{"Episode", "Track 1", "Track 2", "Output"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))

	failed := 0
	for i, p := range pairs {
		if err := mergePair(cmd, p.Sub1, p.Sub2, outputs[i]); err != nil {
			logger.Errorw("Merge failed",
				"episode", p.Episode,
				"error", err,
			)
			failed++
			continue
		}
		logger.Infow("Merged episode",
			"episode", p.Episode,
			"output", outputs[i],
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d episodes failed to merge", failed, len(pairs))
	}
	return nil
}
