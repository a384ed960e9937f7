package ass

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rubisub/rubisub/internal/furigana"
)

// StyleRecord is one named entry in the [V4+ Styles] section. Values are
// copied from the StyleSpec verbatim; nothing is derived at render time.
type StyleRecord struct {
	Name      string
	Font      string
	Size      int
	Primary   furigana.Color
	Secondary furigana.Color
	Outline   furigana.Color
	Back      furigana.Color
	Bold      bool
	Outline2  int // outline thickness
	Shadow    int
	Alignment int
	MarginL   int
	MarginR   int
	MarginV   int
}

// Document is a complete ASS script: header resolution, named styles and the
// ordered event list.
type Document struct {
	Title    string
	PlayResX int
	PlayResY int
	Styles   []StyleRecord
	Events   []Event
}

// Build assembles the output document. Compact mode defines a single Default
// style; positioned mode defines Default, Ruby, Underline and a Secondary
// style for merged second tracks.
func Build(spec StyleSpec, events []Event, mode Mode) *Document {
	doc := &Document{
		Title:    "rubisub",
		PlayResX: spec.CanvasWidth,
		PlayResY: spec.CanvasHeight,
		Events:   events,
	}

	if mode == ModeCompact {
		doc.Styles = []StyleRecord{{
			Name:      StyleDefault,
			Font:      spec.Font,
			Size:      spec.FontSize,
			Primary:   spec.TextColor,
			Secondary: spec.TextColor,
			Outline:   spec.OutlineColor,
			Back:      spec.ShadowColor,
			Outline2:  spec.OutlineSize,
			Shadow:    spec.ShadowSize,
			Alignment: 2, // bottom center
			MarginL:   10,
			MarginR:   10,
			MarginV:   20,
		}}
		return doc
	}

	doc.Styles = []StyleRecord{
		{
			Name:      StyleDefault,
			Font:      spec.Font,
			Size:      spec.FontSize,
			Primary:   spec.TextColor,
			Secondary: spec.TextColor,
			Outline:   spec.OutlineColor,
			Back:      spec.ShadowColor,
			Outline2:  spec.OutlineSize,
			Shadow:    spec.ShadowSize,
			Alignment: 5, // center middle, anchored by \pos
		},
		{
			Name:      StyleRuby,
			Font:      spec.Font,
			Size:      spec.RubyFontSize,
			Primary:   spec.RubyColor,
			Secondary: spec.RubyColor,
			Outline:   spec.OutlineColor,
			Back:      spec.ShadowColor,
			Outline2:  spec.RubyOutlineSize,
			Shadow:    spec.RubyShadowSize,
			Alignment: 5,
		},
		{
			Name:      StyleUnderline,
			Font:      spec.Font,
			Size:      spec.FontSize,
			Primary:   spec.UnderlineColor,
			Secondary: spec.UnderlineColor,
			Alignment: 7, // top left: drawing coordinates are absolute
		},
		{
			Name:      StyleSecondary,
			Font:      spec.Font,
			Size:      spec.FontSize,
			Primary:   spec.SecondaryColor,
			Secondary: spec.SecondaryColor,
			Outline:   spec.OutlineColor,
			Back:      spec.ShadowColor,
			Outline2:  spec.OutlineSize,
			Shadow:    spec.ShadowSize,
			Alignment: 8, // top center for the merged second track
		},
	}
	return doc
}

// String renders the full script text.
func (d *Document) String() string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", d.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", d.PlayResX))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", d.PlayResY))
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, s := range d.Styles {
		bold := 0
		if s.Bold {
			bold = -1
		}
		sb.WriteString(fmt.Sprintf(
			"Style: %s,%s,%d,%s,%s,%s,%s,%d,0,0,0,100,100,0,0,1,%d,%d,%d,%d,%d,%d,1\n",
			s.Name, s.Font, s.Size,
			s.Primary.StyleLiteral(), s.Secondary.StyleLiteral(),
			s.Outline.StyleLiteral(), s.Back.StyleLiteral(),
			bold, s.Outline2, s.Shadow, s.Alignment,
			s.MarginL, s.MarginR, s.MarginV,
		))
	}
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, e := range d.Events {
		sb.WriteString(fmt.Sprintf(
			"Dialogue: %d,%s,%s,%s,,0,0,0,,%s\n",
			e.Layer,
			FormatASSTime(e.Start),
			FormatASSTime(e.End),
			e.Style,
			e.Text,
		))
	}

	return sb.String()
}

// Write saves the script, creating parent directories as needed.
func (d *Document) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(d.String()); err != nil {
		return err
	}
	return writer.Flush()
}

// FormatASSTime renders a duration as h:mm:ss.cc, rounded half-up to
// centisecond precision.
func FormatASSTime(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := int(d.Milliseconds()/10) % 100

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
