package engine

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// fakeRunner records invocations and returns scripted results.
type fakeRunner struct {
	name   string
	args   []string
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func TestBuildPandocArgs(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		contains []string
		absent   []string
		wantErr  error
	}{
		{
			name: "revealjs with theme and slide level",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.html",
				Format:     FormatRevealJS,
				Theme:      "white",
				SlideLevel: 2,
			},
			contains: []string{"-t revealjs", "-V theme=white", "--slide-level 2", "--mathjax", "--standalone"},
		},
		{
			name: "revealjs incremental",
			job: Job{
				InputPath:   "in.md",
				OutputPath:  "out.html",
				Format:      FormatRevealJS,
				Incremental: true,
			},
			contains: []string{"--incremental"},
		},
		{
			name: "beamer with theme",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.pdf",
				Format:     FormatBeamer,
				Theme:      "metropolis",
			},
			contains: []string{"-t beamer", "-V theme=metropolis"},
		},
		{
			name: "pptx",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.pptx",
				Format:     FormatPPTX,
			},
			contains: []string{"-t pptx"},
			absent:   []string{"--mathjax"},
		},
		{
			name: "notes html",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.html",
				Format:     FormatHTML,
			},
			contains: []string{"-t html5", "--mathjax"},
		},
		{
			name: "notes pdf inferred from extension",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.pdf",
				Format:     FormatPDF,
			},
			contains: []string{"-o out.pdf"},
			absent:   []string{"-t "},
		},
		{
			name: "bibliography adds citeproc",
			job: Job{
				InputPath:    "in.md",
				OutputPath:   "out.html",
				Format:       FormatHTML,
				Bibliography: "refs.bib",
			},
			contains: []string{"--citeproc", "--bibliography refs.bib"},
		},
		{
			name: "unknown format rejected",
			job: Job{
				InputPath:  "in.md",
				OutputPath: "out.xyz",
				Format:     Format("xyz"),
			},
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := buildPandocArgs(tt.job)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("buildPandocArgs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPandocArgs() unexpected error: %v", err)
			}

			joined := strings.Join(args, " ")
			if args[0] != tt.job.InputPath {
				t.Errorf("first arg = %q, want input path %q", args[0], tt.job.InputPath)
			}
			for _, want := range tt.contains {
				if !strings.Contains(joined, want) {
					t.Errorf("args missing %q: %s", want, joined)
				}
			}
			for _, not := range tt.absent {
				if strings.Contains(joined, not) {
					t.Errorf("args unexpectedly contain %q: %s", not, joined)
				}
			}
		})
	}
}

func TestPandocEngineRender(t *testing.T) {
	runner := &fakeRunner{}
	e := &PandocEngine{Runner: runner, Path: "pandoc"}

	job := Job{InputPath: "in.md", OutputPath: "out.html", Format: FormatRevealJS}
	if err := e.Render(context.Background(), job); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if runner.name != "pandoc" {
		t.Errorf("invoked %q, want pandoc", runner.name)
	}
}

func TestPandocEngineRenderFailureRelaysStderr(t *testing.T) {
	runner := &fakeRunner{
		stderr: "pandoc: unknown writer revealjs2",
		err:    errors.New("exit status 21"),
	}
	e := &PandocEngine{Runner: runner, Path: "pandoc"}

	err := e.Render(context.Background(), Job{
		InputPath: "in.md", OutputPath: "out.html", Format: FormatRevealJS,
	})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("Render() error = %v, want ErrRender", err)
	}
	if !strings.Contains(err.Error(), "unknown writer revealjs2") {
		t.Errorf("error does not relay stderr: %v", err)
	}
}

func TestPandocEngineNotFound(t *testing.T) {
	runner := &fakeRunner{err: exec.ErrNotFound}
	e := &PandocEngine{Runner: runner, Path: "pandoc"}

	err := e.Render(context.Background(), Job{
		InputPath: "in.md", OutputPath: "out.html", Format: FormatHTML,
	})
	if !errors.Is(err, ErrPandocNotFound) {
		t.Errorf("Render() error = %v, want ErrPandocNotFound", err)
	}
}

func TestPandocEngineVersion(t *testing.T) {
	runner := &fakeRunner{stdout: "pandoc 3.1.9\nFeatures: +server +lua\n"}
	e := &PandocEngine{Runner: runner, Path: "pandoc"}

	got, err := e.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() unexpected error: %v", err)
	}
	if got != "pandoc 3.1.9" {
		t.Errorf("Version() = %q, want %q", got, "pandoc 3.1.9")
	}
	if runner.args[0] != "--version" {
		t.Errorf("args = %v, want --version", runner.args)
	}
}

func TestFormatValidAndExtension(t *testing.T) {
	tests := []struct {
		format Format
		valid  bool
		ext    string
	}{
		{FormatRevealJS, true, "html"},
		{FormatPPTX, true, "pptx"},
		{FormatBeamer, true, "pdf"},
		{FormatHTML, true, "html"},
		{FormatPDF, true, "pdf"},
		{FormatDocx, true, "docx"},
		{Format("odp"), false, "odp"},
	}

	for _, tt := range tests {
		if got := tt.format.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.format, got, tt.valid)
		}
		if got := tt.format.Extension(); got != tt.ext {
			t.Errorf("%q.Extension() = %q, want %q", tt.format, got, tt.ext)
		}
	}
}
