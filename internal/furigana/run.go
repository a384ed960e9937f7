package furigana

// Kind discriminates the run variants produced by Parse.
type Kind int

const (
	// KindPlain is unannotated text.
	KindPlain Kind = iota
	// KindAnnotated is a base span with a furigana reading.
	KindAnnotated
	// KindColored is text wrapped in recognized color markup.
	KindColored
)

// Run is one contiguous typed span of caption text. A caption parses into an
// ordered sequence of runs in reading order.
type Run struct {
	Kind    Kind
	Text    string // KindPlain and KindColored
	Base    string // KindAnnotated: the kanji span
	Reading string // KindAnnotated: the furigana gloss
	Color   Color  // KindColored
}

func Plain(text string) Run {
	return Run{Kind: KindPlain, Text: text}
}

func Annotated(base, reading string) Run {
	return Run{Kind: KindAnnotated, Base: base, Reading: reading}
}

func Colored(text string, color Color) Run {
	return Run{Kind: KindColored, Text: text, Color: color}
}

// Content returns the visible text of the run, without the reading.
func (r Run) Content() string {
	if r.Kind == KindAnnotated {
		return r.Base
	}
	return r.Text
}
