package router

import "strings"

// Directive identifies a routing instruction found in the source document.
type Directive int

// Directive kinds, in the order they appear in the authoring guide.
const (
	// DirNewSlide starts a new slide and routes to both streams.
	DirNewSlide Directive = iota
	// DirSlidesOnly routes subsequent content to the slides stream only.
	DirSlidesOnly
	// DirNotesOnly routes subsequent content to the notes stream only.
	DirNotesOnly
	// DirNotesNewSlide routes to notes only and marks a section boundary there.
	DirNotesNewSlide
	// DirAll resumes routing to both streams.
	DirAll
)

// String returns the directive's comment form as written in source documents.
func (d Directive) String() string {
	switch d {
	case DirNewSlide:
		return "<!-- SLIDE -->"
	case DirSlidesOnly:
		return "<!-- SLIDE-ONLY -->"
	case DirNotesOnly:
		return "<!-- NOTES-ONLY -->"
	case DirNotesNewSlide:
		return "<!-- NOTES -->"
	case DirAll:
		return "<!-- ALL -->"
	}
	return "<!-- ? -->"
}

// directives maps the exact comment text to its directive kind.
// Matching is case-sensitive: lowercase or misspelled variants are
// ordinary content, so incidental HTML comments pass through untouched.
var directives = map[string]Directive{
	"<!-- SLIDE -->":      DirNewSlide,
	"<!-- SLIDE-ONLY -->": DirSlidesOnly,
	"<!-- NOTES-ONLY -->": DirNotesOnly,
	"<!-- NOTES -->":      DirNotesNewSlide,
	"<!-- ALL -->":        DirAll,
}

// Classify reports whether line is a recognized directive comment.
// The line must contain nothing but the comment after trimming
// surrounding whitespace.
func Classify(line string) (Directive, bool) {
	d, ok := directives[strings.TrimSpace(line)]
	return d, ok
}
