package merge

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rubisub/rubisub/internal/furigana"
	"github.com/rubisub/rubisub/internal/subtitle"
)

// TrackOptions controls how one input track is styled inside the merged
// output.
type TrackOptions struct {
	// Color wraps the track's text in <font color="..."> markup. Empty
	// leaves the text uncolored. Names are validated against the converter's
	// color table so merged output stays parseable downstream.
	Color string
	// Size wraps the text in <font size="..."> markup when positive.
	Size int
	Bold bool
	// Top anchors the track at the top of the frame.
	Top bool
	// Offset shifts every timestamp of the track. Entries whose end time
	// becomes non-positive are dropped, matching common resync behavior.
	Offset time.Duration
}

type track struct {
	entries []subtitle.Entry
	opts    TrackOptions
}

// Merger combines caption tracks into one output track. Input entries are
// never mutated; merging produces new entries owned by the output alone.
type Merger struct {
	tracks []track
}

func NewMerger() *Merger {
	return &Merger{}
}

// Add parses a subtitle file and queues it for merging.
func (m *Merger) Add(path string, opts TrackOptions) error {
	if opts.Color != "" {
		if _, ok := furigana.LookupColor(opts.Color); !ok {
			return fmt.Errorf("unknown track color %q", opts.Color)
		}
	}

	file, err := subtitle.Open(path)
	if err != nil {
		return fmt.Errorf("failed to add track %s: %w", path, err)
	}

	m.tracks = append(m.tracks, track{
		entries: file.Subtitle().Entries,
		opts:    opts,
	})
	return nil
}

// Merge combines all added tracks: per-track styling applied, times shifted,
// entries sorted by start time and reindexed from 1.
func (m *Merger) Merge() (*subtitle.Subtitle, error) {
	if len(m.tracks) == 0 {
		return nil, fmt.Errorf("no subtitle tracks have been added")
	}

	var merged []subtitle.Entry
	for _, tr := range m.tracks {
		for _, entry := range tr.entries {
			start := entry.StartTime + tr.opts.Offset
			end := entry.EndTime + tr.opts.Offset
			if end <= 0 {
				continue
			}
			if start < 0 {
				start = 0
			}

			merged = append(merged, subtitle.Entry{
				StartTime: start,
				EndTime:   end,
				Text:      styleText(entry.Text, tr.opts),
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartTime < merged[j].StartTime
	})

	for i := range merged {
		merged[i].Index = i + 1
	}

	return &subtitle.Subtitle{
		Entries: merged,
		Format:  string(subtitle.FormatSRT),
	}, nil
}

// WriteTo merges and saves the combined track as SRT.
func (m *Merger) WriteTo(path string) error {
	sub, err := m.Merge()
	if err != nil {
		return err
	}
	return subtitle.WriteSRT(sub, path)
}

func styleText(text string, opts TrackOptions) string {
	if opts.Bold {
		text = "<b>" + text + "</b>"
	}

	switch {
	case opts.Color != "" && opts.Size > 0:
		text = fmt.Sprintf(
			`<font color="%s" size="%d">%s</font>`,
			strings.ToLower(opts.Color), opts.Size, text,
		)
	case opts.Color != "":
		text = fmt.Sprintf(
			`<font color="%s">%s</font>`,
			strings.ToLower(opts.Color), text,
		)
	case opts.Size > 0:
		text = fmt.Sprintf(`<font size="%d">%s</font>`, opts.Size, text)
	}

	if opts.Top {
		text = `{\an8}` + text
	}

	return text
}
