package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes the command and captures both output streams.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// DefaultPandocPath is used when no explicit binary path is configured.
const DefaultPandocPath = "pandoc"

// PandocEngine renders routed markdown through the Pandoc CLI.
type PandocEngine struct {
	Runner CommandRunner
	Path   string // pandoc binary, defaults to DefaultPandocPath
}

// NewPandocEngine creates a PandocEngine with a real command runner.
func NewPandocEngine(path string) *PandocEngine {
	if path == "" {
		path = DefaultPandocPath
	}
	return &PandocEngine{Runner: &ExecRunner{}, Path: path}
}

// Render invokes pandoc for one job. Pandoc's stderr is included in the
// wrapped error on failure so the user sees the engine's own diagnostics.
func (e *PandocEngine) Render(ctx context.Context, job Job) error {
	args, err := buildPandocArgs(job)
	if err != nil {
		return err
	}

	_, stderr, err := e.Runner.Run(ctx, e.Path, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPandocNotFound, e.Path)
		}
		return fmt.Errorf("%w: %s (%s): %s: %v",
			ErrRender, job.Format, job.OutputPath, strings.TrimSpace(stderr), err)
	}
	return nil
}

// Version reports the first line of `pandoc --version`, used by doctor.
func (e *PandocEngine) Version(ctx context.Context) (string, error) {
	stdout, _, err := e.Runner.Run(ctx, e.Path, "--version")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrPandocNotFound, e.Path)
		}
		return "", fmt.Errorf("probing pandoc: %w", err)
	}
	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(line), nil
}

// buildPandocArgs translates a Job into a pandoc argument list.
// -f markdown-fancy_lists disables automatic conversion of letter markers
// (A), B), etc.) to numbered lists, preserving lecture text as written.
func buildPandocArgs(job Job) ([]string, error) {
	if !job.Format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, job.Format)
	}

	args := []string{
		job.InputPath,
		"-f", "markdown-fancy_lists",
		"-o", job.OutputPath,
		"--standalone",
	}

	switch job.Format {
	case FormatRevealJS:
		args = append(args, "-t", "revealjs", "--mathjax")
		if job.Theme != "" {
			args = append(args, "-V", "theme="+job.Theme)
		}
		if job.Incremental {
			args = append(args, "--incremental")
		}
	case FormatBeamer:
		args = append(args, "-t", "beamer")
		if job.Theme != "" {
			args = append(args, "-V", "theme="+job.Theme)
		}
		if job.Incremental {
			args = append(args, "--incremental")
		}
	case FormatPPTX:
		args = append(args, "-t", "pptx")
	case FormatHTML:
		args = append(args, "-t", "html5", "--mathjax")
	case FormatPDF, FormatDocx:
		// Format inferred from the output extension.
	}

	if job.SlideLevel > 0 {
		args = append(args, "--slide-level", strconv.Itoa(job.SlideLevel))
	}

	if job.Bibliography != "" {
		args = append(args, "--citeproc", "--bibliography", job.Bibliography)
	}

	return args, nil
}
