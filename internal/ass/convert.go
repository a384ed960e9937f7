package ass

import (
	"fmt"

	"github.com/rubisub/rubisub/internal/furigana"
	"github.com/rubisub/rubisub/internal/subtitle"
)

// Convert runs the full pipeline over one track: parse annotations, lay out
// geometry, emit events, build the document. The style spec is validated up front
// so a bad configuration aborts before any caption is touched.
func Convert(sub *subtitle.Subtitle, spec StyleSpec, mode Mode) (*Document, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style configuration: %w", err)
	}

	var events []Event
	for _, entry := range sub.Entries {
		runs := furigana.Parse(entry.Text)
		layout := Lay(runs, spec)
		events = append(events, Emit(entry, runs, layout, spec, mode)...)
	}

	return Build(spec, events, mode), nil
}
