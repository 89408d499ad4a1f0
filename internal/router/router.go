// Package router splits an annotated markdown document into two derived
// streams: presentation slides and lecture notes.
//
// Routing is controlled by HTML-comment directives embedded in the source,
// each on its own line:
//
//	<!-- SLIDE -->       new slide, content goes to both streams
//	<!-- SLIDE-ONLY -->  content goes to the slides stream only
//	<!-- NOTES-ONLY -->  content goes to the notes stream only
//	<!-- NOTES -->       notes only, with a section boundary in the notes
//	<!-- ALL -->         resume routing to both streams
//
// Directives never appear in either output. Anything that is not an exact
// directive match is ordinary content. The model is flat: the most recent
// directive wins, there is no nesting or stacking of regions.
package router

import "strings"

// Mode is the router's current emission state.
type Mode int

// Emission modes.
const (
	ModeBoth Mode = iota
	ModeSlidesOnly
	ModeNotesOnly
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModeSlidesOnly:
		return "slides-only"
	case ModeNotesOnly:
		return "notes-only"
	}
	return "unknown"
}

// slideSeparator is the marker inserted at slide boundaries. Pandoc and
// reveal.js treat a horizontal rule as a slide break.
const slideSeparator = "---"

// Result holds the two derived documents produced by Route.
type Result struct {
	Slides string
	Notes  string
}

// stream accumulates output lines for one derived document.
type stream struct {
	lines []string
}

func (s *stream) append(line string) {
	s.lines = append(s.lines, line)
}

// appendSeparator inserts a slide separator, guarded by blank lines so the
// rule cannot be parsed as a setext heading underline for the previous line.
func (s *stream) appendSeparator() {
	if n := len(s.lines); n > 0 && s.lines[n-1] != "" {
		s.append("")
	}
	s.append(slideSeparator)
	s.append("")
}

func (s *stream) String() string {
	return strings.Join(s.lines, "\n")
}

// Route partitions content into slides and notes streams in a single pass.
//
// Route is total: it never fails, regardless of input. Every non-directive
// line is appended verbatim to the stream(s) selected by the current mode,
// preserving source order. Directive lines update the mode and are dropped.
func Route(content string) Result {
	if content == "" {
		return Result{}
	}

	var slides, notes stream
	mode := ModeBoth

	for _, line := range strings.Split(content, "\n") {
		if d, ok := Classify(line); ok {
			mode = apply(d, mode, &slides, &notes)
			continue
		}
		if mode == ModeBoth || mode == ModeSlidesOnly {
			slides.append(line)
		}
		if mode == ModeBoth || mode == ModeNotesOnly {
			notes.append(line)
		}
	}

	return Result{Slides: slides.String(), Notes: notes.String()}
}

// apply executes one directive: it returns the new mode and inserts slide
// separators where the directive calls for a boundary.
func apply(d Directive, mode Mode, slides, notes *stream) Mode {
	switch d {
	case DirNewSlide:
		slides.appendSeparator()
		return ModeBoth
	case DirSlidesOnly:
		return ModeSlidesOnly
	case DirNotesOnly:
		return ModeNotesOnly
	case DirNotesNewSlide:
		notes.appendSeparator()
		return ModeNotesOnly
	case DirAll:
		return ModeBoth
	}
	return mode
}
