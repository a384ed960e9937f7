package furigana

import (
	"strings"
	"unicode"
)

// Parse scans caption text left to right and splits it into typed runs.
//
// Two markup forms are recognized, first match wins at each position:
//
//   - furigana: a maximal run of kanji immediately followed by a reading in
//     parentheses, e.g. 漢字(かんじ). ASCII and fullwidth parentheses both
//     delimit the reading.
//   - color: <font color="NAME">...</font> with NAME in the color table or a
//     #rrggbb literal.
//
// Everything else accumulates into plain runs. Malformed markup (unbalanced
// parentheses, unclosed or unknown-color tags) degrades to plain text with
// no characters dropped; Parse never fails.
func Parse(raw string) []Run {
	rs := []rune(raw)
	var runs []Run
	var plain []rune

	flush := func() {
		if len(plain) > 0 {
			runs = append(runs, Plain(string(plain)))
			plain = plain[:0]
		}
	}

	i := 0
	for i < len(rs) {
		if rs[i] == '<' {
			if run, next, ok := scanColorSpan(rs, i); ok {
				if run.Kind == KindPlain {
					// unknown color: markup stripped, text kept
					plain = append(plain, []rune(run.Text)...)
				} else {
					flush()
					runs = append(runs, run)
				}
				i = next
				continue
			}
		}

		if isKanji(rs[i]) {
			j := i
			for j < len(rs) && isKanji(rs[j]) {
				j++
			}
			if reading, next, ok := scanReading(rs, j); ok {
				flush()
				runs = append(runs, Annotated(string(rs[i:j]), reading))
				i = next
				continue
			}
			plain = append(plain, rs[i:j]...)
			i = j
			continue
		}

		plain = append(plain, rs[i])
		i++
	}

	flush()
	return runs
}

func isKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// scanReading expects an opening parenthesis at rs[i] and returns the
// enclosed non-empty reading plus the index past the closing parenthesis.
func scanReading(rs []rune, i int) (string, int, bool) {
	if i >= len(rs) {
		return "", 0, false
	}

	var closer rune
	switch rs[i] {
	case '(':
		closer = ')'
	case '（':
		closer = '）'
	default:
		return "", 0, false
	}

	j := i + 1
	for j < len(rs) && rs[j] != closer && rs[j] != ')' && rs[j] != '）' {
		j++
	}
	if j >= len(rs) || rs[j] != closer || j == i+1 {
		return "", 0, false
	}

	return string(rs[i+1 : j]), j + 1, true
}

const (
	fontOpenPrefix = `<font color="`
	fontClose      = `</font>`
)

// scanColorSpan expects '<' at rs[i]. On a well-formed font tag it returns a
// Colored run (or a Plain run when the color name is unknown) and the index
// past the closing tag. Inner markup is kept literal; nesting is not
// supported.
func scanColorSpan(rs []rune, i int) (Run, int, bool) {
	rest := string(rs[i:])

	if len(rest) < len(fontOpenPrefix) ||
		!strings.EqualFold(rest[:len(fontOpenPrefix)], fontOpenPrefix) {
		return Run{}, 0, false
	}

	nameStart := len(fontOpenPrefix)
	nameEnd := strings.Index(rest[nameStart:], `">`)
	if nameEnd < 0 {
		return Run{}, 0, false
	}
	name := rest[nameStart : nameStart+nameEnd]

	bodyStart := nameStart + nameEnd + len(`">`)
	closeIdx := indexASCIIFold(rest[bodyStart:], fontClose)
	if closeIdx < 0 {
		return Run{}, 0, false
	}
	body := rest[bodyStart : bodyStart+closeIdx]

	next := i + len([]rune(rest[:bodyStart+closeIdx+len(fontClose)]))

	color, ok := LookupColor(name)
	if !ok {
		return Plain(body), next, true
	}
	return Colored(body, color), next, true
}

// indexASCIIFold finds the first case-insensitive occurrence of an ASCII
// needle. Byte-wise folding keeps offsets stable in multibyte text.
func indexASCIIFold(s, needle string) int {
	if len(needle) == 0 || len(s) < len(needle) {
		return -1
	}
	for i := 0; i+len(needle) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
