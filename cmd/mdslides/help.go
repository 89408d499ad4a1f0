package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdslides <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build slides and notes from annotated markdown")
	fmt.Fprintln(w, "  serve      Build, watch, and preview with live reload")
	fmt.Fprintln(w, "  doctor     Check pandoc, Chrome, and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdslides help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdslides build <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split annotated markdown into slides and notes, and render each")
	fmt.Fprintln(w, "requested format. Directives in the source control the routing:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  <!-- SLIDE -->        start a new slide (content goes to both)")
	fmt.Fprintln(w, "  <!-- SLIDE-ONLY -->   following content goes to slides only")
	fmt.Fprintln(w, "  <!-- NOTES-ONLY -->   following content goes to notes only")
	fmt.Fprintln(w, "  <!-- NOTES -->        new notes section, notes only")
	fmt.Fprintln(w, "  <!-- ALL -->          resume sending content to both")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --pandoc <path>       Pandoc binary path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Targets:")
	fmt.Fprintln(w, "      --slides <list>       Slides formats: revealjs, pptx, beamer")
	fmt.Fprintln(w, "      --notes <list>        Notes formats: html, pdf, docx")
	fmt.Fprintln(w, "      --no-slides           Skip the slides stream")
	fmt.Fprintln(w, "      --no-notes            Skip the notes stream")
	fmt.Fprintln(w, "      --pdf-engine <s>      Notes PDF engine: pandoc, chrome")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Presentation:")
	fmt.Fprintln(w, "      --theme <s>           reveal.js/Beamer theme")
	fmt.Fprintln(w, "      --slide-level <n>     Heading level that starts a slide (1-6)")
	fmt.Fprintln(w, "      --incremental         Reveal list items one at a time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata:")
	fmt.Fprintln(w, "      --title <s>           Lecture title (front matter wins)")
	fmt.Fprintln(w, "      --author <s>          Author name")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long")
	fmt.Fprintln(w, "      --institute <s>       Institute line (Beamer title page)")
	fmt.Fprintln(w, "      --bibliography <path> BibTeX/CSL file for citations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdslides serve <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build once, then watch the input and rebuild on changes. Outputs are")
	fmt.Fprintln(w, "served over HTTP with live reload in connected browser tabs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve flags:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: localhost:8080)")
	fmt.Fprintln(w, "      --debounce <ms>       Rebuild debounce in milliseconds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "All build flags also apply. Run 'mdslides help build' for the list.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdslides doctor [--json] [--pandoc <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that pandoc and (optionally) Chrome are available, and report")
	fmt.Fprintln(w, "container/CI environment details relevant to headless rendering.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdslides version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdslides help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
