package router

import (
	"strings"
	"testing"
)

func TestRoutePassThrough(t *testing.T) {
	// A document with no directives comes out identical on both streams.
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "plain paragraphs",
			input: "# Title\n\nShared intro.\n\nMore text.",
		},
		{
			name:  "code fence preserved",
			input: "```go\nfunc main() {}\n```",
		},
		{
			name:  "math block preserved",
			input: "$$\n\\int_0^1 f(x)\\,dx\n$$",
		},
		{
			name:  "table preserved",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
		},
		{
			name:  "trailing newline preserved",
			input: "last line\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.input)
			if got.Slides != tt.input {
				t.Errorf("Slides:\ngot:  %q\nwant: %q", got.Slides, tt.input)
			}
			if got.Notes != tt.input {
				t.Errorf("Notes:\ngot:  %q\nwant: %q", got.Notes, tt.input)
			}
		})
	}
}

func TestRouteEmptyInput(t *testing.T) {
	got := Route("")
	if got.Slides != "" || got.Notes != "" {
		t.Errorf("Route(\"\") = %+v, want empty streams", got)
	}
}

func TestRouteModeCoverage(t *testing.T) {
	// Each directive routes the following content into exactly the
	// stream(s) from the transition table.
	tests := []struct {
		name       string
		input      string
		wantSlides string
		wantNotes  string
	}{
		{
			name:       "SLIDE keeps both and inserts separator in slides",
			input:      "before\n<!-- SLIDE -->\nafter",
			wantSlides: "before\n\n---\n\nafter",
			wantNotes:  "before\nafter",
		},
		{
			name:       "SLIDE-ONLY routes to slides only",
			input:      "<!-- SLIDE-ONLY -->\ncontent",
			wantSlides: "content",
			wantNotes:  "",
		},
		{
			name:       "NOTES-ONLY routes to notes only",
			input:      "<!-- NOTES-ONLY -->\ncontent",
			wantSlides: "",
			wantNotes:  "content",
		},
		{
			name:       "NOTES routes to notes only with separator in notes",
			input:      "before\n<!-- NOTES -->\nafter",
			wantSlides: "before",
			wantNotes:  "before\n\n---\n\nafter",
		},
		{
			name:       "ALL resumes both",
			input:      "<!-- NOTES-ONLY -->\nnotes bit\n<!-- ALL -->\nshared bit",
			wantSlides: "shared bit",
			wantNotes:  "notes bit\nshared bit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.input)
			if got.Slides != tt.wantSlides {
				t.Errorf("Slides:\ngot:  %q\nwant: %q", got.Slides, tt.wantSlides)
			}
			if got.Notes != tt.wantNotes {
				t.Errorf("Notes:\ngot:  %q\nwant: %q", got.Notes, tt.wantNotes)
			}
		})
	}
}

func TestRouteLastDirectiveWins(t *testing.T) {
	got := Route("<!-- SLIDE-ONLY -->\n<!-- NOTES-ONLY -->\nline1")
	if got.Slides != "" {
		t.Errorf("Slides = %q, want empty (later directive wins)", got.Slides)
	}
	if got.Notes != "line1" {
		t.Errorf("Notes = %q, want %q", got.Notes, "line1")
	}
}

func TestRouteConcreteScenario(t *testing.T) {
	input := strings.Join([]string{
		"# Title",
		"Shared intro.",
		"<!-- SLIDE-ONLY -->",
		"Bullet for slides.",
		"<!-- NOTES-ONLY -->",
		"Detailed explanation.",
		"<!-- ALL -->",
		"Closing shared remark.",
	}, "\n")

	got := Route(input)

	wantSlides := strings.Join([]string{
		"# Title",
		"Shared intro.",
		"Bullet for slides.",
		"Closing shared remark.",
	}, "\n")
	wantNotes := strings.Join([]string{
		"# Title",
		"Shared intro.",
		"Detailed explanation.",
		"Closing shared remark.",
	}, "\n")

	if got.Slides != wantSlides {
		t.Errorf("Slides:\ngot:  %q\nwant: %q", got.Slides, wantSlides)
	}
	if got.Notes != wantNotes {
		t.Errorf("Notes:\ngot:  %q\nwant: %q", got.Notes, wantNotes)
	}
}

func TestRouteNoDirectiveLeakage(t *testing.T) {
	input := strings.Join([]string{
		"top",
		"<!-- SLIDE -->",
		"<!-- SLIDE-ONLY -->",
		"slides",
		"<!-- NOTES-ONLY -->",
		"notes",
		"<!-- NOTES -->",
		"more notes",
		"<!-- ALL -->",
		"tail",
	}, "\n")

	got := Route(input)

	for _, out := range []string{got.Slides, got.Notes} {
		for _, line := range strings.Split(out, "\n") {
			if _, ok := Classify(line); ok {
				t.Errorf("directive %q leaked into output", line)
			}
		}
	}
}

func TestRouteOrderPreservation(t *testing.T) {
	input := strings.Join([]string{
		"a",
		"<!-- NOTES-ONLY -->",
		"b",
		"<!-- ALL -->",
		"c",
		"<!-- SLIDE-ONLY -->",
		"d",
		"<!-- ALL -->",
		"e",
	}, "\n")

	got := Route(input)

	// Retained lines must be a subsequence of the input, in order.
	assertSubsequence(t, "slides", got.Slides, input)
	assertSubsequence(t, "notes", got.Notes, input)

	if want := "a\nc\nd\ne"; got.Slides != want {
		t.Errorf("Slides = %q, want %q", got.Slides, want)
	}
	if want := "a\nb\nc\ne"; got.Notes != want {
		t.Errorf("Notes = %q, want %q", got.Notes, want)
	}
}

func TestRouteEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSlides string
		wantNotes  string
	}{
		{
			name:       "directive at end of file leaves trailing empty section",
			input:      "content\n<!-- NOTES-ONLY -->",
			wantSlides: "content",
			wantNotes:  "content",
		},
		{
			name:       "consecutive identical directives collapse",
			input:      "<!-- NOTES-ONLY -->\n<!-- NOTES-ONLY -->\nx",
			wantSlides: "",
			wantNotes:  "x",
		},
		{
			name:       "document starting with SLIDE has no dangling separator guard",
			input:      "<!-- SLIDE -->\nfirst",
			wantSlides: "---\n\nfirst",
			wantNotes:  "first",
		},
		{
			name:       "separator after blank line is not doubled",
			input:      "text\n\n<!-- SLIDE -->\nnext",
			wantSlides: "text\n\n---\n\nnext",
			wantNotes:  "text\n\nnext",
		},
		{
			name:       "indented directive still recognized",
			input:      "  <!-- SLIDE-ONLY -->\nonly slides",
			wantSlides: "only slides",
			wantNotes:  "",
		},
		{
			name:       "unrecognized comment treated as content",
			input:      "<!-- SLIDE ONLY -->\ntext",
			wantSlides: "<!-- SLIDE ONLY -->\ntext",
			wantNotes:  "<!-- SLIDE ONLY -->\ntext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.input)
			if got.Slides != tt.wantSlides {
				t.Errorf("Slides:\ngot:  %q\nwant: %q", got.Slides, tt.wantSlides)
			}
			if got.Notes != tt.wantNotes {
				t.Errorf("Notes:\ngot:  %q\nwant: %q", got.Notes, tt.wantNotes)
			}
		})
	}
}

// assertSubsequence checks that every line of out appears in input in the
// same relative order, ignoring separator and blank lines inserted by the
// router.
func assertSubsequence(t *testing.T, label, out, input string) {
	t.Helper()

	inputLines := strings.Split(input, "\n")
	pos := 0

outer:
	for _, line := range strings.Split(out, "\n") {
		if line == "" || line == slideSeparator {
			continue
		}
		for pos < len(inputLines) {
			if inputLines[pos] == line {
				pos++
				continue outer
			}
			pos++
		}
		t.Errorf("%s: line %q not found in input order", label, line)
		return
	}
}
