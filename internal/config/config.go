package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rubisub/rubisub/internal/ass"
	"github.com/rubisub/rubisub/internal/furigana"
)

//go:embed sample_config.toml
var sampleConfig string

// Style holds the subtitle styling defaults. Colors accept ASS literals
// (&HAABBGGRR), #rrggbb hex values, or table color names.
type Style struct {
	Font           string `toml:"font"`
	FontSize       int    `toml:"font_size"`
	RubyFontSize   int    `toml:"ruby_font_size"`
	TextColor      string `toml:"text_color"`
	RubyColor      string `toml:"ruby_color"`
	OutlineColor   string `toml:"outline_color"`
	ShadowColor    string `toml:"shadow_color"`
	UnderlineColor string `toml:"underline_color"`
	OutlineSize    int    `toml:"outline_size"`
	ShadowSize     int    `toml:"shadow_size"`
}

// Canvas holds the render target resolution.
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Annotate holds defaults for the LLM furigana pre-annotation command.
type Annotate struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	BatchSize   int    `toml:"batch_size"`
	Concurrency int    `toml:"concurrency"`
}

// Config is the optional on-disk configuration. Every field has a working
// default; a missing file is not an error for callers that treat the path as
// optional.
type Config struct {
	Style    Style    `toml:"style"`
	Canvas   Canvas   `toml:"canvas"`
	Annotate Annotate `toml:"annotate"`
}

// Load reads a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// WriteSample writes the annotated sample configuration to path.
func WriteSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0644)
}

// ApplyStyle overlays the config's set fields onto a StyleSpec. Unset fields
// keep the style spec's current values.
func (c *Config) ApplyStyle(spec *ass.StyleSpec) error {
	s := c.Style
	if s.Font != "" {
		spec.Font = s.Font
	}
	if s.FontSize > 0 {
		spec.FontSize = s.FontSize
	}
	if s.RubyFontSize > 0 {
		spec.RubyFontSize = s.RubyFontSize
	}
	if s.OutlineSize > 0 {
		spec.OutlineSize = s.OutlineSize
	}
	if s.ShadowSize > 0 {
		spec.ShadowSize = s.ShadowSize
	}

	colorFields := []struct {
		value  string
		target *furigana.Color
		name   string
	}{
		{s.TextColor, &spec.TextColor, "text_color"},
		{s.RubyColor, &spec.RubyColor, "ruby_color"},
		{s.OutlineColor, &spec.OutlineColor, "outline_color"},
		{s.ShadowColor, &spec.ShadowColor, "shadow_color"},
		{s.UnderlineColor, &spec.UnderlineColor, "underline_color"},
	}
	for _, f := range colorFields {
		if f.value == "" {
			continue
		}
		color, err := furigana.ParseColorValue(f.value)
		if err != nil {
			return fmt.Errorf("style.%s: %w", f.name, err)
		}
		*f.target = color
	}

	if c.Canvas.Width > 0 {
		spec.CanvasWidth = c.Canvas.Width
	}
	if c.Canvas.Height > 0 {
		spec.CanvasHeight = c.Canvas.Height
	}

	return nil
}
