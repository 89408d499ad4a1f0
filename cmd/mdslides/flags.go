package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// metaFlags holds document metadata flags.
type metaFlags struct {
	title        string
	author       string
	date         string
	institute    string
	bibliography string
}

// slideFlags holds presentation stream flags.
type slideFlags struct {
	formats     []string
	theme       string
	slideLevel  int
	incremental bool
	disabled    bool
}

// noteFlags holds notes stream flags.
type noteFlags struct {
	formats   []string
	pdfEngine string
	disabled  bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	pandoc  string
	meta    metaFlags
	slides  slideFlags
	notes   noteFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	build    buildFlags
	addr     string
	debounce int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addMetaFlags adds document metadata flags to a FlagSet.
func addMetaFlags(fs *flag.FlagSet, f *metaFlags) {
	fs.StringVar(&f.title, "title", "", "lecture title (\"\" = from front matter)")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.date, "date", "", "date: \"auto\", \"auto:FORMAT\", or literal")
	fs.StringVar(&f.institute, "institute", "", "institute line (Beamer title page)")
	fs.StringVar(&f.bibliography, "bibliography", "", "BibTeX/CSL file for citations")
}

// addSlideFlags adds presentation stream flags to a FlagSet.
func addSlideFlags(fs *flag.FlagSet, f *slideFlags) {
	fs.StringSliceVar(&f.formats, "slides", nil, "slides formats: revealjs, pptx, beamer")
	fs.StringVar(&f.theme, "theme", "", "reveal.js/Beamer theme")
	fs.IntVar(&f.slideLevel, "slide-level", 0, "heading level that starts a slide (1-6)")
	fs.BoolVar(&f.incremental, "incremental", false, "reveal list items one at a time")
	fs.BoolVar(&f.disabled, "no-slides", false, "skip the slides stream")
}

// addNoteFlags adds notes stream flags to a FlagSet.
func addNoteFlags(fs *flag.FlagSet, f *noteFlags) {
	fs.StringSliceVar(&f.formats, "notes", nil, "notes formats: html, pdf, docx")
	fs.StringVar(&f.pdfEngine, "pdf-engine", "", "notes PDF engine: pandoc, chrome")
	fs.BoolVar(&f.disabled, "no-notes", false, "skip the notes stream")
}

// addBuildFlags adds the full build flag set.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-render timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary path")

	addCommonFlags(fs, &f.common)
	addMetaFlags(fs, &f.meta)
	addSlideFlags(fs, &f.slides)
	addNoteFlags(fs, &f.notes)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	addBuildFlags(fs, f)

	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}
	addBuildFlags(fs, &f.build)
	fs.StringVar(&f.addr, "addr", "", "listen address (default: localhost:8080)")
	fs.IntVar(&f.debounce, "debounce", 0, "rebuild debounce in milliseconds")

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
