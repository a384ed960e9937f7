package cli

import (
	"github.com/rubisub/rubisub/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rubisub",
	Short: "Furigana-aware subtitle converter and merger",
	Long: `Rubisub converts Japanese SRT subtitles with inline furigana readings
(漢字(かんじ) syntax) into ASS subtitles that render ruby text, and merges
multiple subtitle tracks into one.

Conversion supports a compact mode using inline {\rt} ruby tags and a
positioned mode that draws base text, ruby and underlines as independent
timed events, matching professional release styling.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to a rubisub TOML config file")
}
