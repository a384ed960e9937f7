package annotate

import (
	"strings"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[{"index":0,"text":"a"}]`, `[{"index":0,"text":"a"}]`},
		{"fenced", "```json\n[{\"index\":0,\"text\":\"a\"}]\n```", `[{"index":0,"text":"a"}]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"whitespace", "  \n[1]\n  ", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"subtitle line break", `"one\Ntwo"`, `"one\\Ntwo"`},
		{"valid escapes untouched", `"a\nb\tc\\d\"e"`, `"a\nb\tc\\d\"e"`},
		{"unicode escape untouched", `"あ"`, `"あ"`},
		{"no escapes", `"plain"`, `"plain"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixInvalidEscapes(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseResponseText(t *testing.T) {
	response := `[
  {"index": 0, "text": "漢字(かんじ)です"},
  {"index": 1, "text": "難(むずか)しい"}
]`

	results, err := parseResponseText(response, 2)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if results[0].Text != "漢字(かんじ)です" || results[1].Text != "難(むずか)しい" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestParseResponseTextWithProse(t *testing.T) {
	response := `Here are the annotated subtitles:

[{"index": 0, "text": "漢字(かんじ)"}]`

	results, err := parseResponseText(response, 1)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if results[0].Text != "漢字(かんじ)" {
		t.Errorf("unexpected result: %+v", results)
	}
}

func TestParseResponseTextWrapperObject(t *testing.T) {
	for _, key := range []string{"results", "annotations", "data", "items"} {
		response := `{"` + key + `": [{"index": 0, "text": "本(ほん)"}]}`
		results, err := parseResponseText(response, 1)
		if err != nil {
			t.Fatalf("wrapper %q: parse failed: %v", key, err)
		}
		if results[0].Text != "本(ほん)" {
			t.Errorf("wrapper %q: unexpected result %+v", key, results)
		}
	}
}

func TestParseResponseTextSubtitleEscapes(t *testing.T) {
	response := `[{"index": 0, "text": "一行目\N二行目"}]`

	results, err := parseResponseText(response, 1)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if results[0].Text != `一行目\N二行目` {
		t.Errorf("expected literal \\N preserved, got %q", results[0].Text)
	}
}

func TestParseResponseTextCountMismatch(t *testing.T) {
	_, err := parseResponseText(`[{"index": 0, "text": "a"}]`, 2)
	if err == nil || !strings.Contains(err.Error(), "expected 2 results") {
		t.Errorf("expected count mismatch error, got %v", err)
	}
}

func TestParseResponseTextGarbage(t *testing.T) {
	_, err := parseResponseText("I cannot help with that.", 1)
	if err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncateString("abcdefghij", 5); got != "abcde..." {
		t.Errorf("expected truncation, got %q", got)
	}
}
