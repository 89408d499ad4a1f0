package mdslides

import (
	"time"

	"github.com/alnah/go-mdslides/internal/engine"
)

// Format identifies an output format. Re-exported from the engine package
// so library consumers never import internal paths.
type Format = engine.Format

// Supported output formats.
const (
	// Slides targets.
	FormatRevealJS = engine.FormatRevealJS
	FormatPPTX     = engine.FormatPPTX
	FormatBeamer   = engine.FormatBeamer

	// Notes targets.
	FormatHTML = engine.FormatHTML
	FormatPDF  = engine.FormatPDF
	FormatDocx = engine.FormatDocx
)

// Metadata describes a lecture document. Values given here act as defaults:
// front matter in the source document wins field by field.
type Metadata struct {
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
	Date         string `yaml:"date"` // "auto" resolves to today, "auto:<fmt>" picks a format
	Institute    string `yaml:"institute"`
	Bibliography string `yaml:"bibliography"` // path forwarded to the engine's citation pass
}

// SlideOptions configure the presentation stream.
type SlideOptions struct {
	Theme       string // reveal.js or Beamer theme, empty = engine default
	SlideLevel  int    // heading level that starts a new slide, 0 = engine default
	Incremental bool   // reveal list items one at a time
}

// Input contains the source document and per-run options.
type Input struct {
	Markdown string       // annotated lecture source (required)
	Meta     Metadata     // metadata defaults, overridden by front matter
	Slides   SlideOptions // presentation options
}

// SplitResult holds the two derived markdown documents plus the resolved
// metadata that produced their headers.
type SplitResult struct {
	Slides string
	Notes  string
	Meta   Metadata
}

// Targets selects which outputs Build renders and where they land.
type Targets struct {
	Slides    []Format // presentation formats: revealjs, pptx, beamer
	Notes     []Format // document formats: html, pdf, docx
	OutputDir string   // destination directory (must exist)
	BaseName  string   // output stem; slides become <base>-slides.<ext>, notes <base>-notes.<ext>
}

// Stream names a derivative document family in results.
type Stream string

// The two output streams.
const (
	StreamSlides Stream = "slides"
	StreamNotes  Stream = "notes"
)

// TargetResult reports one rendered output. Err is nil on success; a failed
// target never discards its siblings (partial-success policy).
type TargetResult struct {
	Stream     Stream
	Format     Format
	OutputPath string
	Duration   time.Duration
	Err        error
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout    time.Duration
	pandocPath string
	chromePDF  bool // render notes PDF via headless Chrome instead of pandoc
	now        func() time.Time
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdslides: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPandocPath sets the pandoc binary location (default: $PATH lookup).
func WithPandocPath(path string) Option {
	return func(s *Service) {
		s.cfg.pandocPath = path
	}
}

// WithChromePDF routes the notes PDF target through headless Chrome instead
// of pandoc, avoiding the LaTeX dependency.
func WithChromePDF() Option {
	return func(s *Service) {
		s.cfg.chromePDF = true
	}
}
