package ass

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rubisub/rubisub/internal/furigana"
	"github.com/rubisub/rubisub/internal/subtitle"
)

func testEntry(text string) subtitle.Entry {
	return subtitle.Entry{
		Index:     1,
		StartTime: 1 * time.Second,
		EndTime:   5 * time.Second,
		Text:      text,
	}
}

func emitFor(t *testing.T, text string, mode Mode) []Event {
	t.Helper()
	spec := DefaultStyleSpec()
	entry := testEntry(text)
	runs := furigana.Parse(text)
	return Emit(entry, runs, Lay(runs, spec), spec, mode)
}

func TestEmitCompactRubyTags(t *testing.T) {
	events := emitFor(t, "漢字(かんじ)は難(むずか)しいです。", ModeCompact)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := `{\rt(かんじ)}漢字は{\rt(むずか)}難しいです。`
	if events[0].Text != want {
		t.Errorf("expected payload %q, got %q", want, events[0].Text)
	}
	if events[0].Layer != 0 {
		t.Errorf("compact events belong on layer 0, got %d", events[0].Layer)
	}
	if events[0].Start != 1*time.Second || events[0].End != 5*time.Second {
		t.Errorf("timestamps not carried: %v - %v", events[0].Start, events[0].End)
	}
	if events[0].Style != StyleDefault {
		t.Errorf("expected style %s, got %s", StyleDefault, events[0].Style)
	}
}

func TestEmitCompactColorOverride(t *testing.T) {
	events := emitFor(t, `<font color="darkblue">青い</font>空`, ModeCompact)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := `{\c&H0000E6&}青い{\c}空`
	if events[0].Text != want {
		t.Errorf("expected payload %q, got %q", want, events[0].Text)
	}
}

func TestEmitCompactPlainRoundTrip(t *testing.T) {
	text := "ただのテキストです"
	events := emitFor(t, text, ModeCompact)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Text != text {
		t.Errorf("plain caption must pass through unchanged: got %q", events[0].Text)
	}
}

func TestEmitCompactExplicitNewline(t *testing.T) {
	events := emitFor(t, "一行目\n二行目", ModeCompact)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Text != `一行目\N二行目` {
		t.Errorf("expected \\N line break, got %q", events[0].Text)
	}
}

func TestEmitEmptyCaption(t *testing.T) {
	for _, text := range []string{"", "   ", "\n"} {
		if events := emitFor(t, text, ModeCompact); len(events) != 0 {
			t.Errorf("expected no events for %q, got %d", text, len(events))
		}
		if events := emitFor(t, text, ModePositioned); len(events) != 0 {
			t.Errorf("expected no events for %q, got %d", text, len(events))
		}
	}
}

func TestEmitPositionedDecomposition(t *testing.T) {
	events := emitFor(t, "漢字(かんじ)", ModePositioned)

	if len(events) != 3 {
		t.Fatalf("expected base+ruby+underline, got %d events", len(events))
	}

	byStyle := map[string]Event{}
	for _, e := range events {
		byStyle[e.Style] = e
		if e.Start != 1*time.Second || e.End != 5*time.Second {
			t.Errorf("event %s timestamps diverge: %v - %v", e.Style, e.Start, e.End)
		}
	}

	base, ok := byStyle[StyleDefault]
	if !ok {
		t.Fatal("missing base event")
	}
	ruby, ok := byStyle[StyleRuby]
	if !ok {
		t.Fatal("missing ruby event")
	}
	rule, ok := byStyle[StyleUnderline]
	if !ok {
		t.Fatal("missing underline event")
	}

	if base.Layer != int(LayerBase) || ruby.Layer != int(LayerRuby) || rule.Layer != int(LayerUnderline) {
		t.Errorf("unexpected layers: base=%d ruby=%d rule=%d", base.Layer, ruby.Layer, rule.Layer)
	}
	if !strings.Contains(base.Text, "漢字") {
		t.Errorf("base event missing kanji: %q", base.Text)
	}
	if !strings.Contains(ruby.Text, "かんじ") {
		t.Errorf("ruby event missing reading: %q", ruby.Text)
	}
	if !strings.HasPrefix(base.Text, `{\pos(`) || !strings.HasPrefix(ruby.Text, `{\pos(`) {
		t.Error("positioned events must carry \\pos overrides")
	}
	if !strings.Contains(rule.Text, `{\p1}m `) || !strings.Contains(rule.Text, `{\p0}`) {
		t.Errorf("underline should be a drawing primitive: %q", rule.Text)
	}
	if !strings.Contains(rule.Text, "&H4E4EF1&") {
		t.Errorf("underline should carry the furigana marker color: %q", rule.Text)
	}
}

func TestEmitPositionedSharedAnchor(t *testing.T) {
	spec := DefaultStyleSpec()
	runs := furigana.Parse("前置き漢字(かんじ)後ろ")
	layout := Lay(runs, spec)
	events := Emit(testEntry("前置き漢字(かんじ)後ろ"), runs, layout, spec, ModePositioned)

	// base and ruby of the annotated run must share the X anchor
	var annotated *Placement
	for i := range layout.Placements {
		if layout.Placements[i].Run.Kind == furigana.KindAnnotated {
			annotated = &layout.Placements[i]
		}
	}
	if annotated == nil {
		t.Fatal("expected an annotated placement")
	}

	wantBase := eventText(annotated.Base.X, annotated.Base.Y, "漢字")
	wantRuby := eventText(annotated.Ruby.X, annotated.Ruby.Y, "かんじ")

	var haveBase, haveRuby bool
	for _, e := range events {
		if e.Text == wantBase {
			haveBase = true
		}
		if e.Text == wantRuby {
			haveRuby = true
		}
	}
	if !haveBase {
		t.Errorf("missing base event %q in %+v", wantBase, events)
	}
	if !haveRuby {
		t.Errorf("missing ruby event %q in %+v", wantRuby, events)
	}
}

func eventText(x, y int, content string) string {
	return fmt.Sprintf(`{\pos(%d,%d)}%s`, x, y, content)
}

func TestEmitPositionedColoredRun(t *testing.T) {
	events := emitFor(t, `<font color="red">危険</font>`, ModePositioned)

	if len(events) != 1 {
		t.Fatalf("expected 1 base event, got %d", len(events))
	}
	if !strings.Contains(events[0].Text, `{\c&H0000FF&}危険{\c}`) {
		t.Errorf("expected scoped color override, got %q", events[0].Text)
	}
}

func TestEmitFallbackForUnparsedCaption(t *testing.T) {
	spec := DefaultStyleSpec()
	entry := testEntry("生テキスト\nそのまま")

	events := Emit(entry, nil, Layout{}, spec, ModePositioned)
	if len(events) != 1 {
		t.Fatalf("expected 1 fallback event, got %d", len(events))
	}
	if events[0].Text != `生テキスト\Nそのまま` {
		t.Errorf("fallback should carry text verbatim, got %q", events[0].Text)
	}
	if events[0].Style != StyleDefault {
		t.Errorf("fallback uses the default style, got %s", events[0].Style)
	}
}
