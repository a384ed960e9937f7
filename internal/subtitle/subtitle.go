package subtitle

import (
	"time"
)

// Entry is a single timed caption. Entries are immutable once parsed; text
// rewrites go through File.SetText, which affects only the file object.
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Subtitle is one complete caption track.
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

// Format identifies a subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// File is a parsed subtitle file that can be edited in place and rewritten.
type File interface {
	Format() Format
	Subtitle() *Subtitle
	SetText(index int, text string) error
	Write(path string) error
}
