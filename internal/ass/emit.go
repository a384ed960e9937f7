package ass

import (
	"fmt"
	"strings"
	"time"

	"github.com/rubisub/rubisub/internal/furigana"
	"github.com/rubisub/rubisub/internal/subtitle"
)

// Style names referenced by emitted events. Build defines matching records.
const (
	StyleDefault   = "Default"
	StyleRuby      = "Ruby"
	StyleUnderline = "Underline"
	StyleSecondary = "Secondary"
)

// Event is one timed ASS dialogue line. Overlapping events are expected:
// base, ruby and underline for the same caption share start and end.
type Event struct {
	Layer int
	Start time.Duration
	End   time.Duration
	Style string
	Text  string
}

// Emit serializes one parsed, laid-out caption into events. Captions with no
// visible content produce no events; a caption whose text resists parsing
// entirely falls back to a single verbatim base event so conversion never
// drops a caption.
func Emit(
	entry subtitle.Entry,
	runs []furigana.Run,
	layout Layout,
	spec StyleSpec,
	mode Mode,
) []Event {
	if strings.TrimSpace(entry.Text) == "" {
		return nil
	}
	if len(runs) == 0 {
		return []Event{{
			Layer: int(LayerBase),
			Start: entry.StartTime,
			End:   entry.EndTime,
			Style: StyleDefault,
			Text:  escapeText(entry.Text),
		}}
	}

	if mode == ModeCompact {
		return emitCompact(entry, layout)
	}
	return emitPositioned(entry, layout, spec)
}

// emitCompact renders the whole caption as one event. Ruby is expressed with
// the native \rt tag so strict renderers accept it; colors use scoped \c
// overrides.
func emitCompact(entry subtitle.Entry, layout Layout) []Event {
	var sb strings.Builder
	for i, line := range layout.Lines {
		if i > 0 {
			sb.WriteString(`\N`)
		}
		for _, run := range line {
			switch run.Kind {
			case furigana.KindAnnotated:
				sb.WriteString(fmt.Sprintf(`{\rt(%s)}%s`, run.Reading, run.Base))
			case furigana.KindColored:
				sb.WriteString(fmt.Sprintf(`{\c%s}%s{\c}`, run.Color.InlineTag(), run.Text))
			default:
				sb.WriteString(run.Text)
			}
		}
	}

	text := sb.String()
	if text == "" {
		return nil
	}

	return []Event{{
		Layer: 0,
		Start: entry.StartTime,
		End:   entry.EndTime,
		Style: StyleDefault,
		Text:  text,
	}}
}

// emitPositioned produces up to three events per run: underline below, base
// text, ruby above, each an independent timed draw at explicit coordinates.
func emitPositioned(entry subtitle.Entry, layout Layout, spec StyleSpec) []Event {
	var events []Event

	for _, p := range layout.Placements {
		colorTag := ""
		colorReset := ""
		if p.Run.Kind == furigana.KindColored {
			colorTag = fmt.Sprintf(`{\c%s}`, p.Run.Color.InlineTag())
			colorReset = `{\c}`
		}

		events = append(events, Event{
			Layer: int(LayerBase),
			Start: entry.StartTime,
			End:   entry.EndTime,
			Style: StyleDefault,
			Text: fmt.Sprintf(`{\pos(%d,%d)}%s%s%s`,
				p.Base.X, p.Base.Y, colorTag, p.Run.Content(), colorReset),
		})

		if p.Ruby != nil {
			events = append(events, Event{
				Layer: int(LayerRuby),
				Start: entry.StartTime,
				End:   entry.EndTime,
				Style: StyleRuby,
				Text: fmt.Sprintf(`{\pos(%d,%d)}%s`,
					p.Ruby.X, p.Ruby.Y, p.Run.Reading),
			})
		}

		if p.Rule != nil {
			events = append(events, Event{
				Layer: int(LayerUnderline),
				Start: entry.StartTime,
				End:   entry.EndTime,
				Style: StyleUnderline,
				Text:  underlineDrawing(*p.Rule, spec),
			})
		}
	}

	return events
}

// underlineDrawing emits a filled-rectangle drawing primitive spanning the
// base run, in absolute canvas coordinates.
func underlineDrawing(box GlyphBox, spec StyleSpec) string {
	x1 := box.X
	x2 := box.X + box.W
	y1 := box.Y
	y2 := box.Y + box.H
	return fmt.Sprintf(
		`{\pos(0,0)}{\c%s}{\p1}m %d %d l %d %d %d %d %d %d{\p0}{\c}`,
		spec.UnderlineColor.InlineTag(),
		x1, y1, x2, y1, x2, y2, x1, y2,
	)
}

func escapeText(text string) string {
	return strings.ReplaceAll(text, "\n", `\N`)
}
