package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Pair is one episode's matched primary and secondary subtitle files.
type Pair struct {
	Episode string
	Sub1    string
	Sub2    string
}

// PairPatterns selects and identifies episode files in a directory. The
// file patterns filter filenames; the episode patterns must each contain one
// capture group extracting the episode identifier.
type PairPatterns struct {
	Sub1Filter  string
	Sub2Filter  string
	Sub1Episode string
	Sub2Episode string
}

// FindPairs scans a directory for .srt files and pairs them by extracted
// episode identifier. Files that match a filter but yield no episode number,
// and episodes with only one side present, are reported in skipped rather
// than failing the batch.
func FindPairs(dir string, patterns PairPatterns) (pairs []Pair, skipped []string, err error) {
	sub1Filter, err := regexp.Compile("(?i)" + patterns.Sub1Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sub1 pattern: %w", err)
	}
	sub2Filter, err := regexp.Compile("(?i)" + patterns.Sub2Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sub2 pattern: %w", err)
	}
	sub1Episode, err := compileEpisodePattern(patterns.Sub1Episode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sub1 episode pattern: %w", err)
	}
	sub2Episode, err := compileEpisodePattern(patterns.Sub2Episode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sub2 episode pattern: %w", err)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory: %w", err)
	}

	sub1ByEpisode := map[string]string{}
	sub2ByEpisode := map[string]string{}

	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".srt") {
			continue
		}
		name := de.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(dir, name)

		switch {
		case sub1Filter.MatchString(name):
			ep := extractEpisode(sub1Episode, stem)
			if ep == "" {
				skipped = append(skipped, name+" (no episode number)")
				continue
			}
			if prev, dup := sub1ByEpisode[ep]; dup {
				skipped = append(skipped, name+" (duplicate of "+filepath.Base(prev)+")")
				continue
			}
			sub1ByEpisode[ep] = path
		case sub2Filter.MatchString(name):
			ep := extractEpisode(sub2Episode, stem)
			if ep == "" {
				skipped = append(skipped, name+" (no episode number)")
				continue
			}
			if prev, dup := sub2ByEpisode[ep]; dup {
				skipped = append(skipped, name+" (duplicate of "+filepath.Base(prev)+")")
				continue
			}
			sub2ByEpisode[ep] = path
		}
	}

	for ep, sub1 := range sub1ByEpisode {
		sub2, ok := sub2ByEpisode[ep]
		if !ok {
			skipped = append(skipped, filepath.Base(sub1)+" (no matching second track)")
			continue
		}
		pairs = append(pairs, Pair{Episode: ep, Sub1: sub1, Sub2: sub2})
	}
	for ep, sub2 := range sub2ByEpisode {
		if _, ok := sub1ByEpisode[ep]; !ok {
			skipped = append(skipped, filepath.Base(sub2)+" (no matching first track)")
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return episodeLess(pairs[i].Episode, pairs[j].Episode)
	})
	sort.Strings(skipped)

	return pairs, skipped, nil
}

func compileEpisodePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q needs a capture group for the episode number", pattern)
	}
	return re, nil
}

func extractEpisode(re *regexp.Regexp, stem string) string {
	m := re.FindStringSubmatch(stem)
	if len(m) < 2 {
		return ""
	}
	// normalize zero padding so "03" and "3" pair up
	ep := strings.TrimLeft(m[1], "0")
	if ep == "" && m[1] != "" {
		ep = "0"
	}
	return ep
}

// episodeLess orders numeric episode ids numerically and anything else
// lexically.
func episodeLess(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
