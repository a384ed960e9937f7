package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rubisub/rubisub/internal/ass"
	"github.com/rubisub/rubisub/internal/config"
	"github.com/rubisub/rubisub/internal/furigana"
	"github.com/rubisub/rubisub/internal/video"
)

// addStyleFlags registers the shared styling flags on a command. Defaults
// mirror DefaultStyleSpec so help output shows the effective values.
func addStyleFlags(cmd *cobra.Command) {
	spec := ass.DefaultStyleSpec()

	cmd.Flags().String("font", spec.Font, "Font name for all styles")
	cmd.Flags().Int("font-size", spec.FontSize, "Font size for base text")
	cmd.Flags().Int("ruby-font-size", spec.RubyFontSize, "Font size for ruby text")
	cmd.Flags().String("text-color", spec.TextColor.StyleLiteral(),
		"Base text color (&HAABBGGRR, #rrggbb or a color name)")
	cmd.Flags().String("ruby-color", spec.RubyColor.StyleLiteral(),
		"Ruby text color")
	cmd.Flags().String("outline-color", spec.OutlineColor.StyleLiteral(),
		"Outline color")
	cmd.Flags().String("shadow-color", spec.ShadowColor.StyleLiteral(),
		"Shadow color")
	cmd.Flags().Int("outline-size", spec.OutlineSize, "Outline thickness")
	cmd.Flags().Int("shadow-size", spec.ShadowSize, "Shadow depth")
	cmd.Flags().Int("canvas-width", spec.CanvasWidth, "Render canvas width")
	cmd.Flags().Int("canvas-height", spec.CanvasHeight, "Render canvas height")
	cmd.Flags().String("video", "",
		"Video file to probe for canvas resolution (overrides canvas flags)")
}

// resolveStyleSpec layers configuration sources: built-in defaults, then the
// config file, then explicitly set flags, then the probed video resolution.
// The result is validated once so a bad spec aborts before any file is read.
func resolveStyleSpec(cmd *cobra.Command) (ass.StyleSpec, error) {
	spec := ass.DefaultStyleSpec()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return spec, err
		}
		if err := cfg.ApplyStyle(&spec); err != nil {
			return spec, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("font") {
		spec.Font, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		spec.FontSize, _ = flags.GetInt("font-size")
	}
	if flags.Changed("ruby-font-size") {
		spec.RubyFontSize, _ = flags.GetInt("ruby-font-size")
	}
	if flags.Changed("outline-size") {
		spec.OutlineSize, _ = flags.GetInt("outline-size")
	}
	if flags.Changed("shadow-size") {
		spec.ShadowSize, _ = flags.GetInt("shadow-size")
	}
	if flags.Changed("canvas-width") {
		spec.CanvasWidth, _ = flags.GetInt("canvas-width")
	}
	if flags.Changed("canvas-height") {
		spec.CanvasHeight, _ = flags.GetInt("canvas-height")
	}

	colorFlags := []struct {
		name   string
		target *furigana.Color
	}{
		{"text-color", &spec.TextColor},
		{"ruby-color", &spec.RubyColor},
		{"outline-color", &spec.OutlineColor},
		{"shadow-color", &spec.ShadowColor},
	}
	for _, f := range colorFlags {
		if !flags.Changed(f.name) {
			continue
		}
		value, _ := flags.GetString(f.name)
		color, err := furigana.ParseColorValue(value)
		if err != nil {
			return spec, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.target = color
	}

	if videoPath, _ := flags.GetString("video"); videoPath != "" {
		res, err := video.ProbeResolution(videoPath)
		if err != nil {
			return spec, fmt.Errorf("failed to probe video resolution: %w", err)
		}
		spec.CanvasWidth = res.Width
		spec.CanvasHeight = res.Height
		logger.Infow("Probed canvas resolution from video",
			"video", videoPath,
			"width", res.Width,
			"height", res.Height,
		)
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}
