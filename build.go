package mdslides

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdslides/internal/engine"
	"github.com/alnah/go-mdslides/internal/fileutil"
	"github.com/alnah/go-mdslides/internal/frontmatter"
)

// Build splits the source and renders every requested target.
//
// Each target produces its own TargetResult; rendering failures are recorded
// per target and never abort the remaining targets, so a missing LaTeX
// toolchain cannot take the HTML outputs down with it. The returned error is
// non-nil only for failures before rendering starts (validation, splitting).
func (s *Service) Build(ctx context.Context, input Input, targets Targets) ([]TargetResult, error) {
	if len(targets.Slides)+len(targets.Notes) == 0 {
		return nil, ErrNoTargets
	}
	for _, f := range targets.Slides {
		if !isSlidesFormat(f) {
			return nil, fmt.Errorf("%w: %q is not a slides format", ErrInvalidTarget, f)
		}
	}
	for _, f := range targets.Notes {
		if !isNotesFormat(f) {
			return nil, fmt.Errorf("%w: %q is not a notes format", ErrInvalidTarget, f)
		}
	}

	split, err := s.Split(input)
	if err != nil {
		return nil, err
	}

	results := make([]TargetResult, 0, len(targets.Slides)+len(targets.Notes))

	if len(targets.Slides) > 0 {
		results = append(results, s.renderStream(ctx, StreamSlides, split.Slides, split.Meta, input.Slides, targets, targets.Slides)...)
	}
	if len(targets.Notes) > 0 {
		results = append(results, s.renderStream(ctx, StreamNotes, split.Notes, split.Meta, input.Slides, targets, targets.Notes)...)
	}

	return results, nil
}

// renderStream writes one routed source to a temp file and renders all of
// the stream's formats from it.
func (s *Service) renderStream(ctx context.Context, stream Stream, source string, meta Metadata, opts SlideOptions, targets Targets, formats []Format) []TargetResult {
	results := make([]TargetResult, 0, len(formats))

	srcPath, cleanup, err := fileutil.WriteTempFile(source, "md")
	if err != nil {
		// Staging failed: every format of this stream fails the same way.
		for _, f := range formats {
			results = append(results, TargetResult{Stream: stream, Format: f, Err: err})
		}
		return results
	}
	defer cleanup()

	for _, f := range formats {
		outPath := outputPath(targets.OutputDir, targets.BaseName, stream, f)
		start := time.Now()

		renderErr := s.renderOne(ctx, stream, f, srcPath, outPath, source, meta, opts)

		results = append(results, TargetResult{
			Stream:     stream,
			Format:     f,
			OutputPath: outPath,
			Duration:   time.Since(start),
			Err:        renderErr,
		})
	}

	return results
}

// renderOne dispatches a single target to the right engine.
func (s *Service) renderOne(ctx context.Context, stream Stream, f Format, srcPath, outPath, source string, meta Metadata, opts SlideOptions) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	// Notes PDF through headless Chrome when configured.
	if stream == StreamNotes && f == FormatPDF && s.pdfConverter != nil {
		return s.renderChromePDF(ctx, source, meta.Title, outPath)
	}

	job := engine.Job{
		InputPath:    srcPath,
		OutputPath:   outPath,
		Format:       f,
		Bibliography: meta.Bibliography,
	}
	if stream == StreamSlides {
		job.Theme = opts.Theme
		job.SlideLevel = opts.SlideLevel
		job.Incremental = opts.Incremental
	}

	return s.renderer.Render(ctx, job)
}

// renderChromePDF converts the routed notes source to HTML with the preview
// converter, then prints it to PDF in headless Chrome.
func (s *Service) renderChromePDF(ctx context.Context, source, title, outPath string) error {
	// The YAML header is pandoc's concern; the HTML converter gets the body.
	_, body, _, err := frontmatter.Split(source)
	if err != nil {
		body = source
	}

	htmlContent, err := s.htmlConverter.ToHTML(ctx, title, body)
	if err != nil {
		return err
	}

	pdf, err := s.pdfConverter.PDFFromHTML(ctx, htmlContent)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil { // #nosec G306 -- rendered output is not sensitive
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// outputPath builds "<dir>/<base>-<stream>.<ext>".
func outputPath(dir, base string, stream Stream, f Format) string {
	name := fmt.Sprintf("%s-%s.%s", base, stream, f.Extension())
	return filepath.Join(dir, name)
}

func isSlidesFormat(f Format) bool {
	switch f {
	case FormatRevealJS, FormatPPTX, FormatBeamer:
		return true
	}
	return false
}

func isNotesFormat(f Format) bool {
	switch f {
	case FormatHTML, FormatPDF, FormatDocx:
		return true
	}
	return false
}
