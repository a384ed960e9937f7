package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rubisub/rubisub/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rubisub configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an annotated sample config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "rubisub.toml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite existing file: %s", path)
		}
		if err := config.WriteSample(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logger.Infow("Wrote sample config", "path", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
