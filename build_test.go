package mdslides

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdslides/internal/engine"
)

// fakeEngine records jobs and fails formats listed in failOn.
type fakeEngine struct {
	jobs   []engine.Job
	failOn map[Format]error
}

func (f *fakeEngine) Render(_ context.Context, job engine.Job) error {
	f.jobs = append(f.jobs, job)
	if err, ok := f.failOn[job.Format]; ok {
		return err
	}
	return nil
}

// fakePDF implements the Chrome PDF path without a browser.
type fakePDF struct {
	html   string
	err    error
	closed bool
}

func (f *fakePDF) PDFFromHTML(_ context.Context, htmlContent string) ([]byte, error) {
	f.html = htmlContent
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (f *fakePDF) Close() error {
	f.closed = true
	return nil
}

func TestBuildValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	t.Run("no targets", func(t *testing.T) {
		_, err := s.Build(ctx, Input{Markdown: "x"}, Targets{})
		if !errors.Is(err, ErrNoTargets) {
			t.Errorf("error = %v, want ErrNoTargets", err)
		}
	})

	t.Run("notes format in slides list", func(t *testing.T) {
		_, err := s.Build(ctx, Input{Markdown: "x"}, Targets{Slides: []Format{FormatDocx}})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("error = %v, want ErrInvalidTarget", err)
		}
	})

	t.Run("slides format in notes list", func(t *testing.T) {
		_, err := s.Build(ctx, Input{Markdown: "x"}, Targets{Notes: []Format{FormatRevealJS}})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("error = %v, want ErrInvalidTarget", err)
		}
	})

	t.Run("empty markdown", func(t *testing.T) {
		_, err := s.Build(ctx, Input{}, Targets{Slides: []Format{FormatRevealJS}})
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("error = %v, want ErrEmptyMarkdown", err)
		}
	})
}

func TestBuildRendersAllTargets(t *testing.T) {
	fake := &fakeEngine{}
	s := newTestService()
	s.renderer = fake

	dir := t.TempDir()
	input := Input{
		Markdown: "# L1\n<!-- NOTES-ONLY -->\ndetails\n<!-- ALL -->\nend\n",
		Meta:     Metadata{Title: "L1", Bibliography: "refs.bib"},
		Slides:   SlideOptions{Theme: "black", SlideLevel: 2},
	}
	targets := Targets{
		Slides:    []Format{FormatRevealJS, FormatPPTX},
		Notes:     []Format{FormatHTML},
		OutputDir: dir,
		BaseName:  "lecture01",
	}

	results, err := s.Build(context.Background(), input, targets)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s/%s failed: %v", r.Stream, r.Format, r.Err)
		}
	}

	if len(fake.jobs) != 3 {
		t.Fatalf("len(jobs) = %d, want 3", len(fake.jobs))
	}

	byFormat := map[Format]engine.Job{}
	for _, j := range fake.jobs {
		byFormat[j.Format] = j
	}

	reveal := byFormat[FormatRevealJS]
	if got, want := reveal.OutputPath, filepath.Join(dir, "lecture01-slides.html"); got != want {
		t.Errorf("revealjs output = %q, want %q", got, want)
	}
	if reveal.Theme != "black" || reveal.SlideLevel != 2 {
		t.Errorf("revealjs job missing slide options: %+v", reveal)
	}
	if reveal.Bibliography != "refs.bib" {
		t.Errorf("revealjs job missing bibliography: %+v", reveal)
	}

	notes := byFormat[FormatHTML]
	if got, want := notes.OutputPath, filepath.Join(dir, "lecture01-notes.html"); got != want {
		t.Errorf("notes output = %q, want %q", got, want)
	}
	if notes.Theme != "" {
		t.Errorf("notes job carries slide theme: %+v", notes)
	}

	// The staged notes source must not contain slides-only routing artifacts,
	// and must contain the notes-only content.
	notesSrc, readErr := os.ReadFile(notes.InputPath)
	if readErr == nil { // temp file may already be cleaned up
		if !strings.Contains(string(notesSrc), "details") {
			t.Errorf("staged notes source missing routed content: %q", notesSrc)
		}
	}
}

func TestBuildPartialSuccess(t *testing.T) {
	renderErr := errors.New("pdflatex not found")
	fake := &fakeEngine{failOn: map[Format]error{FormatBeamer: renderErr}}
	s := newTestService()
	s.renderer = fake

	results, err := s.Build(context.Background(), Input{Markdown: "# x\n"}, Targets{
		Slides:    []Format{FormatRevealJS, FormatBeamer},
		Notes:     []Format{FormatHTML},
		OutputDir: t.TempDir(),
		BaseName:  "l",
	})
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if r.Format != FormatBeamer {
				t.Errorf("unexpected failure for %s: %v", r.Format, r.Err)
			}
			if !errors.Is(r.Err, renderErr) {
				t.Errorf("failure not preserved: %v", r.Err)
			}
		} else {
			succeeded++
		}
	}

	if failed != 1 || succeeded != 2 {
		t.Errorf("failed=%d succeeded=%d, want 1 and 2", failed, succeeded)
	}
}

func TestBuildChromePDFPath(t *testing.T) {
	fake := &fakeEngine{}
	pdf := &fakePDF{}
	s := newTestService()
	s.renderer = fake
	s.pdfConverter = pdf

	dir := t.TempDir()
	results, err := s.Build(context.Background(), Input{
		Markdown: "# Notes\ncontent\n",
		Meta:     Metadata{Title: "L1"},
	}, Targets{
		Notes:     []Format{FormatPDF},
		OutputDir: dir,
		BaseName:  "lecture01",
	})
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}

	// Chrome path: no pandoc job, PDF written from converted HTML.
	if len(fake.jobs) != 0 {
		t.Errorf("pandoc invoked for chrome PDF path: %+v", fake.jobs)
	}
	if !strings.Contains(pdf.html, "content") {
		t.Errorf("converted HTML missing content: %q", pdf.html)
	}
	if strings.Contains(pdf.html, "title: L1") {
		t.Errorf("YAML header leaked into converted HTML: %q", pdf.html)
	}

	out := filepath.Join(dir, "lecture01-notes.pdf")
	data, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("reading output: %v", readErr)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Errorf("output = %q", data)
	}
}

func TestBuildNotesPDFViaPandocWhenNoChrome(t *testing.T) {
	fake := &fakeEngine{}
	s := newTestService()
	s.renderer = fake

	_, err := s.Build(context.Background(), Input{Markdown: "# x\n"}, Targets{
		Notes:     []Format{FormatPDF},
		OutputDir: t.TempDir(),
		BaseName:  "l",
	})
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if len(fake.jobs) != 1 || fake.jobs[0].Format != FormatPDF {
		t.Errorf("jobs = %+v, want one pandoc PDF job", fake.jobs)
	}
}

func TestServiceClose(t *testing.T) {
	pdf := &fakePDF{}
	s := newTestService()
	s.pdfConverter = pdf

	if err := s.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if !pdf.closed {
		t.Error("Close() did not close the PDF converter")
	}

	// A service without a converter closes cleanly too.
	if err := newTestService().Close(); err != nil {
		t.Errorf("Close() without converter: %v", err)
	}
}

func TestWithTimeoutPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}
