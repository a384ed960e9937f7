package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rubisub/rubisub/internal/subtitle"
)

func writeTrack(t *testing.T, dir, name string, entries []subtitle.Entry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	sub := &subtitle.Subtitle{Entries: entries}
	if err := subtitle.WriteSRT(sub, path); err != nil {
		t.Fatalf("failed to write track %s: %v", name, err)
	}
	return path
}

func TestMergeTwoTracks(t *testing.T) {
	dir := t.TempDir()
	ja := writeTrack(t, dir, "ja.srt", []subtitle.Entry{
		{Index: 1, StartTime: 1 * time.Second, EndTime: 3 * time.Second, Text: "こんにちは"},
		{Index: 2, StartTime: 5 * time.Second, EndTime: 7 * time.Second, Text: "さようなら"},
	})
	en := writeTrack(t, dir, "en.srt", []subtitle.Entry{
		{Index: 1, StartTime: 2 * time.Second, EndTime: 4 * time.Second, Text: "Hello"},
	})

	m := NewMerger()
	if err := m.Add(ja, TrackOptions{}); err != nil {
		t.Fatalf("add ja: %v", err)
	}
	if err := m.Add(en, TrackOptions{Color: "yellow", Top: true}); err != nil {
		t.Fatalf("add en: %v", err)
	}

	sub, err := m.Merge()
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(sub.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sub.Entries))
	}

	// sorted by start time, reindexed from 1
	for i, entry := range sub.Entries {
		if entry.Index != i+1 {
			t.Errorf("entry %d: expected index %d, got %d", i, i+1, entry.Index)
		}
		if i > 0 && entry.StartTime < sub.Entries[i-1].StartTime {
			t.Error("entries not sorted by start time")
		}
	}

	if sub.Entries[0].Text != "こんにちは" {
		t.Errorf("expected first entry untouched, got %q", sub.Entries[0].Text)
	}
	want := `{\an8}<font color="yellow">Hello</font>`
	if sub.Entries[1].Text != want {
		t.Errorf("expected styled second track %q, got %q", want, sub.Entries[1].Text)
	}
}

func TestMergeStyling(t *testing.T) {
	tests := []struct {
		name string
		opts TrackOptions
		want string
	}{
		{"plain", TrackOptions{}, "text"},
		{"bold", TrackOptions{Bold: true}, "<b>text</b>"},
		{"color", TrackOptions{Color: "Red"}, `<font color="red">text</font>`},
		{"size", TrackOptions{Size: 32}, `<font size="32">text</font>`},
		{"color and size", TrackOptions{Color: "blue", Size: 32},
			`<font color="blue" size="32">text</font>`},
		{"everything", TrackOptions{Color: "green", Size: 20, Bold: true, Top: true},
			`{\an8}<font color="green" size="20"><b>text</b></font>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleText("text", tt.opts); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMergeOffset(t *testing.T) {
	dir := t.TempDir()
	path := writeTrack(t, dir, "track.srt", []subtitle.Entry{
		{Index: 1, StartTime: 1 * time.Second, EndTime: 2 * time.Second, Text: "dropped"},
		{Index: 2, StartTime: 2 * time.Second, EndTime: 4 * time.Second, Text: "clamped"},
		{Index: 3, StartTime: 10 * time.Second, EndTime: 12 * time.Second, Text: "shifted"},
	})

	m := NewMerger()
	if err := m.Add(path, TrackOptions{Offset: -3 * time.Second}); err != nil {
		t.Fatalf("add: %v", err)
	}

	sub, err := m.Merge()
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(sub.Entries) != 2 {
		t.Fatalf("expected entry ending before zero to be dropped, got %d entries", len(sub.Entries))
	}

	if sub.Entries[0].Text != "clamped" || sub.Entries[0].StartTime != 0 {
		t.Errorf("expected clamped entry at 0, got %q at %v",
			sub.Entries[0].Text, sub.Entries[0].StartTime)
	}
	if sub.Entries[0].EndTime != 1*time.Second {
		t.Errorf("expected clamped end 1s, got %v", sub.Entries[0].EndTime)
	}
	if sub.Entries[1].StartTime != 7*time.Second {
		t.Errorf("expected shifted start 7s, got %v", sub.Entries[1].StartTime)
	}
}

func TestMergeRejectsUnknownColor(t *testing.T) {
	m := NewMerger()
	err := m.Add("whatever.srt", TrackOptions{Color: "chartreuse"})
	if err == nil {
		t.Fatal("expected error for unknown color")
	}
	if !strings.Contains(err.Error(), "chartreuse") {
		t.Errorf("error should name the color: %v", err)
	}
}

func TestMergeEmpty(t *testing.T) {
	if _, err := NewMerger().Merge(); err == nil {
		t.Error("expected error when no tracks were added")
	}
}

func TestWriteTo(t *testing.T) {
	dir := t.TempDir()
	path := writeTrack(t, dir, "only.srt", []subtitle.Entry{
		{Index: 1, StartTime: 1 * time.Second, EndTime: 2 * time.Second, Text: "text"},
	})

	m := NewMerger()
	if err := m.Add(path, TrackOptions{}); err != nil {
		t.Fatalf("add: %v", err)
	}

	out := filepath.Join(dir, "merged.srt")
	if err := m.WriteTo(out); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("merged file missing: %v", err)
	}
}
