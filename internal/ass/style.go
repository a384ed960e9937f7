package ass

import (
	"fmt"

	"github.com/rubisub/rubisub/internal/furigana"
)

// Mode selects the emission strategy.
type Mode int

const (
	// ModeCompact emits one event per caption using inline {\rt(...)} ruby
	// tags. This is the path for renderers that reject positioned draws.
	ModeCompact Mode = iota
	// ModePositioned decomposes each caption into independently positioned
	// base, ruby and underline events.
	ModePositioned
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "compact", "inline":
		return ModeCompact, nil
	case "positioned", "advanced":
		return ModePositioned, nil
	default:
		return 0, fmt.Errorf("unsupported mode %q: use compact or positioned", s)
	}
}

// StyleSpec is the immutable configuration for one conversion run. A single
// value governs every caption in a batch; batches never mutate it, so
// parallel per-file conversion can share one spec.
type StyleSpec struct {
	Font         string
	FontSize     int
	RubyFontSize int

	TextColor      furigana.Color
	RubyColor      furigana.Color
	OutlineColor   furigana.Color
	ShadowColor    furigana.Color
	UnderlineColor furigana.Color
	SecondaryColor furigana.Color

	OutlineSize     int
	ShadowSize      int
	RubyOutlineSize int
	RubyShadowSize  int

	CanvasWidth  int
	CanvasHeight int

	// MarginV is the distance from the canvas bottom to the bottom line's
	// baseline row in positioned mode.
	MarginV int
}

// DefaultStyleSpec mirrors the reference release styling: 48px base text over
// 24px ruby on a 1920x1080 canvas.
func DefaultStyleSpec() StyleSpec {
	return StyleSpec{
		Font:            "MS Gothic",
		FontSize:        48,
		RubyFontSize:    24,
		TextColor:       furigana.White,
		RubyColor:       furigana.White,
		OutlineColor:    furigana.Black,
		ShadowColor:     furigana.Black,
		UnderlineColor:  furigana.RGB(0xF1, 0x4E, 0x4E),
		SecondaryColor:  furigana.RGB(0xFF, 0xFF, 0x00),
		OutlineSize:     2,
		ShadowSize:      2,
		RubyOutlineSize: 1,
		RubyShadowSize:  1,
		CanvasWidth:     1920,
		CanvasHeight:    1080,
		MarginV:         69,
	}
}

// Validate rejects configurations that would miscompute every caption in a
// batch. It is checked once before any file is processed.
func (s StyleSpec) Validate() error {
	if s.Font == "" {
		return fmt.Errorf("font name must not be empty")
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", s.FontSize)
	}
	if s.RubyFontSize <= 0 {
		return fmt.Errorf("ruby font size must be positive, got %d", s.RubyFontSize)
	}
	if s.RubyFontSize >= s.FontSize {
		return fmt.Errorf(
			"ruby font size %d must be smaller than base font size %d",
			s.RubyFontSize,
			s.FontSize,
		)
	}
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return fmt.Errorf(
			"canvas dimensions must be positive, got %dx%d",
			s.CanvasWidth,
			s.CanvasHeight,
		)
	}
	if s.OutlineSize < 0 || s.ShadowSize < 0 {
		return fmt.Errorf("outline and shadow sizes must not be negative")
	}
	if s.MarginV < 0 {
		return fmt.Errorf("vertical margin must not be negative, got %d", s.MarginV)
	}
	return nil
}

// rowHeight is the vertical distance between stacked baseline rows, sized to
// fit a base row plus its ruby row.
func (s StyleSpec) rowHeight() int {
	return (s.FontSize + s.RubyFontSize) * 3 / 2
}

// rubyOffset is how far above its baseline row a reading sits.
func (s StyleSpec) rubyOffset() int {
	return s.RubyFontSize * 2
}

// underlineOffset is the distance from the baseline row to the top of the
// has-furigana underline.
func (s StyleSpec) underlineOffset() int {
	return s.FontSize * 3 / 4
}

const underlineThickness = 4
