// Package engine invokes external rendering engines on routed markdown
// sources. Pandoc covers the presentation and document formats; headless
// Chrome covers HTML-to-PDF when no LaTeX toolchain is available.
//
// Engines are black boxes: their stderr is relayed in wrapped errors,
// never interpreted.
package engine

import "context"

// Format identifies an output format understood by an engine.
type Format string

// Supported output formats.
const (
	// Slides targets.
	FormatRevealJS Format = "revealjs"
	FormatPPTX     Format = "pptx"
	FormatBeamer   Format = "beamer"

	// Notes targets.
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatRevealJS, FormatPPTX, FormatBeamer, FormatHTML, FormatPDF, FormatDocx:
		return true
	}
	return false
}

// Extension returns the output file extension for the format, without dot.
func (f Format) Extension() string {
	switch f {
	case FormatRevealJS, FormatHTML:
		return "html"
	case FormatPPTX:
		return "pptx"
	case FormatBeamer, FormatPDF:
		return "pdf"
	case FormatDocx:
		return "docx"
	}
	return string(f)
}

// Job describes one rendering request: a routed markdown source on disk,
// a destination path, and the options the engine forwards to the renderer.
type Job struct {
	InputPath  string // routed slides or notes source
	OutputPath string
	Format     Format

	Theme        string // reveal.js or Beamer theme name, empty = engine default
	SlideLevel   int    // heading level that starts a new slide, 0 = engine default
	Incremental  bool   // reveal lists one item at a time
	Bibliography string // path to a bibliography file, empty = no citeproc
}

// Engine renders one job. Implementations: PandocEngine, ChromeEngine.
type Engine interface {
	Render(ctx context.Context, job Job) error
}
