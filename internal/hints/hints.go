// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to
// error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdslides/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints when the pandoc binary cannot be found.
func ForPandocNotFound() string {
	return formatHints([]string{
		"install pandoc (https://pandoc.org/installing.html)",
		"or set engine.pandocPath in your config to the binary location",
	})
}

// ForBeamerFailure returns hints for Beamer PDF failures, which almost
// always mean a missing LaTeX toolchain.
func ForBeamerFailure() string {
	return formatHints([]string{
		"beamer output needs a LaTeX engine (e.g. texlive)",
		"or use notes.pdfEngine: chrome for LaTeX-free notes PDFs",
	})
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large lectures, use the --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return formatHints([]string{
		"use --config /path/to/file.yaml",
		"or create course.yaml in ~/.config/go-mdslides/",
	})
}

// format renders a single hint line.
func format(text string) string {
	return "\n  hint: " + text
}

// formatHints renders multiple hint lines.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(format(h))
	}
	return b.String()
}
