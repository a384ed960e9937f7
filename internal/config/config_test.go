package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubisub/rubisub/internal/ass"
	"github.com/rubisub/rubisub/internal/furigana"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rubisub.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[style]
font = "Noto Sans JP"
font_size = 60
ruby_font_size = 30
text_color = "yellow"

[canvas]
width = 1280
height = 720

[annotate]
provider = "openai"
batch_size = 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Style.Font != "Noto Sans JP" || cfg.Style.FontSize != 60 {
		t.Errorf("unexpected style: %+v", cfg.Style)
	}
	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 720 {
		t.Errorf("unexpected canvas: %+v", cfg.Canvas)
	}
	if cfg.Annotate.Provider != "openai" || cfg.Annotate.BatchSize != 25 {
		t.Errorf("unexpected annotate: %+v", cfg.Annotate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/rubisub.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "[style\nfont =")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyStyleOverlaysSetFields(t *testing.T) {
	cfg := &Config{
		Style: Style{
			Font:      "Noto Sans JP",
			FontSize:  60,
			TextColor: "yellow",
		},
		Canvas: Canvas{Width: 1280, Height: 720},
	}

	spec := ass.DefaultStyleSpec()
	if err := cfg.ApplyStyle(&spec); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if spec.Font != "Noto Sans JP" || spec.FontSize != 60 {
		t.Errorf("set fields not applied: %+v", spec)
	}
	if spec.TextColor != furigana.RGB(0xFF, 0xFF, 0) {
		t.Errorf("text color not applied: %v", spec.TextColor)
	}
	if spec.CanvasWidth != 1280 || spec.CanvasHeight != 720 {
		t.Errorf("canvas not applied: %dx%d", spec.CanvasWidth, spec.CanvasHeight)
	}

	// unset fields keep their defaults
	def := ass.DefaultStyleSpec()
	if spec.RubyFontSize != def.RubyFontSize {
		t.Errorf("unset ruby size changed: %d", spec.RubyFontSize)
	}
	if spec.RubyColor != def.RubyColor {
		t.Errorf("unset ruby color changed: %v", spec.RubyColor)
	}
}

func TestApplyStyleRejectsBadColor(t *testing.T) {
	cfg := &Config{Style: Style{UnderlineColor: "notacolor"}}

	spec := ass.DefaultStyleSpec()
	err := cfg.ApplyStyle(&spec)
	if err == nil {
		t.Fatal("expected color error")
	}
	if !strings.Contains(err.Error(), "style.underline_color") {
		t.Errorf("error should name the offending field: %v", err)
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// the shipped sample must itself be loadable
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}

	spec := ass.DefaultStyleSpec()
	if err := cfg.ApplyStyle(&spec); err != nil {
		t.Fatalf("sample config does not apply: %v", err)
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("sample config yields invalid spec: %v", err)
	}
}
