package ass

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/rubisub/rubisub/internal/furigana"
)

// Layer identifies the visual plane of a glyph box. The numeric value is also
// the ASS layer (z-order): underlines draw first, ruby last stays on top of
// nothing it shouldn't.
type Layer int

const (
	LayerUnderline Layer = 1
	LayerRuby      Layer = 2
	LayerBase      Layer = 3
)

// GlyphBox is the computed placement for one run on one layer. X and Y are
// the anchor point handed to \pos: the box center for base and ruby text
// (center-middle alignment), the top-left corner for underline rectangles.
// Recomputed per caption, never persisted.
type GlyphBox struct {
	X, Y  int
	W, H  int
	Layer Layer
}

// Placement carries a run together with its per-layer geometry. Ruby and
// Rule are nil for runs without a reading.
type Placement struct {
	Run  furigana.Run
	Line int
	Base GlyphBox
	Ruby *GlyphBox
	Rule *GlyphBox
}

// Layout is the positioned geometry of one caption.
type Layout struct {
	Lines      [][]furigana.Run
	Placements []Placement
}

// RuneWidth estimates the horizontal advance of one rune at the given font
// size: a full em for East Asian wide/fullwidth runes, half otherwise. This
// is an approximation by contract, not font-metric shaping.
func RuneWidth(r rune, fontSize int) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return fontSize
	default:
		return fontSize / 2
	}
}

// TextWidth estimates the rendered width of a string at the given font size.
func TextWidth(s string, fontSize int) int {
	total := 0
	for _, r := range s {
		total += RuneWidth(r, fontSize)
	}
	return total
}

// runWidth is the horizontal advance of a run's visible (base) text.
func runWidth(run furigana.Run, spec StyleSpec) int {
	return TextWidth(run.Content(), spec.FontSize)
}

// BreakLines wraps runs into lines that fit the canvas. Explicit newlines in
// run text force breaks; overflow breaks happen only between runs, never
// inside an annotated base+reading pair, so a single over-wide run is left
// to overflow rather than lose characters.
func BreakLines(runs []furigana.Run, spec StyleSpec) [][]furigana.Run {
	exploded := splitExplicitBreaks(runs)

	var lines [][]furigana.Run
	for _, source := range exploded {
		var line []furigana.Run
		cursor := 0
		for _, run := range source {
			w := runWidth(run, spec)
			if len(line) > 0 && cursor+w > spec.CanvasWidth {
				lines = append(lines, line)
				line = nil
				cursor = 0
			}
			line = append(line, run)
			cursor += w
		}
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitExplicitBreaks cuts plain and colored runs at embedded newlines,
// yielding one run sequence per source line.
func splitExplicitBreaks(runs []furigana.Run) [][]furigana.Run {
	var out [][]furigana.Run
	var current []furigana.Run

	for _, run := range runs {
		if run.Kind == furigana.KindAnnotated || !strings.Contains(run.Text, "\n") {
			current = append(current, run)
			continue
		}

		parts := strings.Split(run.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, current)
				current = nil
			}
			if part == "" {
				continue
			}
			piece := run
			piece.Text = part
			current = append(current, piece)
		}
	}

	out = append(out, current)
	return out
}

// Lay computes positioned-mode geometry for a parsed caption. It is a pure
// function: identical inputs always yield identical placements.
func Lay(runs []furigana.Run, spec StyleSpec) Layout {
	lines := BreakLines(runs, spec)

	layout := Layout{Lines: lines}
	if len(lines) == 0 {
		return layout
	}

	bottomY := spec.CanvasHeight - spec.MarginV
	row := spec.rowHeight()

	for lineIdx, line := range lines {
		baseY := bottomY - (len(lines)-1-lineIdx)*row

		lineWidth := 0
		for _, run := range line {
			lineWidth += runWidth(run, spec)
		}
		cursor := (spec.CanvasWidth - lineWidth) / 2

		for _, run := range line {
			w := runWidth(run, spec)
			p := Placement{
				Run:  run,
				Line: lineIdx,
				Base: GlyphBox{
					X:     cursor + w/2,
					Y:     baseY,
					W:     w,
					H:     spec.FontSize,
					Layer: LayerBase,
				},
			}

			if run.Kind == furigana.KindAnnotated {
				rubyW := TextWidth(run.Reading, spec.RubyFontSize)
				p.Ruby = &GlyphBox{
					X:     cursor + w/2,
					Y:     baseY - spec.rubyOffset(),
					W:     rubyW,
					H:     spec.RubyFontSize,
					Layer: LayerRuby,
				}
				p.Rule = &GlyphBox{
					X:     cursor,
					Y:     baseY + spec.underlineOffset(),
					W:     w,
					H:     underlineThickness,
					Layer: LayerUnderline,
				}
			}

			layout.Placements = append(layout.Placements, p)
			cursor += w
		}
	}

	return layout
}
