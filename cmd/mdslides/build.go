package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	mdslides "github.com/alnah/go-mdslides"
	"github.com/alnah/go-mdslides/internal/config"
	"github.com/alnah/go-mdslides/internal/engine"
	"github.com/alnah/go-mdslides/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// dirPermissions is used when creating output directories.
const dirPermissions = 0o750

// Builder is the interface for the split-and-render service.
type Builder interface {
	Build(ctx context.Context, input mdslides.Input, targets mdslides.Targets) ([]mdslides.TargetResult, error)
}

// Compile-time interface implementation check.
var _ Builder = (*mdslides.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Builder
	Release(Builder)
	Size() int
}

// FileOutcome holds the outcome of building one source file.
type FileOutcome struct {
	InputPath string
	Results   []mdslides.TargetResult
	Err       error // failure before rendering started (read, split, mkdir)
	Duration  time.Duration
}

// runBuildCmd parses flags, assembles the service pool, and runs the build.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadAndMerge(flags)
	if err != nil {
		return err
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return err
	}

	poolSize := resolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := NewServicePool(poolSize, opts...)
	defer pool.Close()

	return runBuild(ctx, positional, flags, cfg, pool, env)
}

// runBuild orchestrates discovery, batch building, and result printing.
func runBuild(ctx context.Context, positionalArgs []string, flags *buildFlags, cfg *config.Config, pool Pool, env *Environment) error {
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	params, err := resolveParams(cfg)
	if err != nil {
		return err
	}

	outcomes := buildBatch(ctx, pool, files, params)

	failedCount := printResults(outcomes, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d target(s) failed", failedCount)
	}
	return nil
}

// buildParams groups per-run inputs shared by every file in the batch.
type buildParams struct {
	meta          mdslides.Metadata
	slides        mdslides.SlideOptions
	slidesFormats []mdslides.Format
	notesFormats  []mdslides.Format
}

// loadAndMerge loads the config (or defaults) and overlays CLI flags.
// CLI values win, matching the usual flag > config > default precedence.
func loadAndMerge(flags *buildFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	// Metadata flags
	if flags.meta.title != "" {
		cfg.Metadata.Title = flags.meta.title
	}
	if flags.meta.author != "" {
		cfg.Metadata.Author = flags.meta.author
	}
	if flags.meta.date != "" {
		cfg.Metadata.Date = flags.meta.date
	}
	if flags.meta.institute != "" {
		cfg.Metadata.Institute = flags.meta.institute
	}
	if flags.meta.bibliography != "" {
		cfg.Metadata.Bibliography = flags.meta.bibliography
	}

	// Slides flags
	if len(flags.slides.formats) > 0 {
		cfg.Slides.Formats = flags.slides.formats
	}
	if flags.slides.theme != "" {
		cfg.Slides.Theme = flags.slides.theme
	}
	if flags.slides.slideLevel > 0 {
		cfg.Slides.SlideLevel = flags.slides.slideLevel
	}
	if flags.slides.incremental {
		cfg.Slides.Incremental = true
	}
	if flags.slides.disabled {
		cfg.Slides.Formats = nil
	}

	// Notes flags
	if len(flags.notes.formats) > 0 {
		cfg.Notes.Formats = flags.notes.formats
	}
	if flags.notes.pdfEngine != "" {
		cfg.Notes.PDFEngine = flags.notes.pdfEngine
	}
	if flags.notes.disabled {
		cfg.Notes.Formats = nil
	}

	// Engine flags
	if flags.pandoc != "" {
		cfg.Engine.PandocPath = flags.pandoc
	}
	if flags.timeout != "" {
		cfg.Engine.Timeout = flags.timeout
	}
}

// serviceOptions translates engine config into library options.
func serviceOptions(cfg *config.Config) ([]mdslides.Option, error) {
	var opts []mdslides.Option

	if cfg.Engine.Timeout != "" {
		d, err := time.ParseDuration(cfg.Engine.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, cfg.Engine.Timeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, cfg.Engine.Timeout)
		}
		opts = append(opts, mdslides.WithTimeout(d))
	}

	if cfg.Engine.PandocPath != "" {
		opts = append(opts, mdslides.WithPandocPath(cfg.Engine.PandocPath))
	}

	if cfg.Notes.PDFEngine == config.PDFEngineChrome {
		opts = append(opts, mdslides.WithChromePDF())
	}

	return opts, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxPoolSize)
	}
	return nil
}

// resolveParams assembles the shared per-run inputs and validates that at
// least one target remains after merging.
func resolveParams(cfg *config.Config) (buildParams, error) {
	p := buildParams{
		meta: mdslides.Metadata{
			Title:        cfg.Metadata.Title,
			Author:       cfg.Metadata.Author,
			Date:         cfg.Metadata.Date,
			Institute:    cfg.Metadata.Institute,
			Bibliography: cfg.Metadata.Bibliography,
		},
		slides: mdslides.SlideOptions{
			Theme:       cfg.Slides.Theme,
			SlideLevel:  cfg.Slides.SlideLevel,
			Incremental: cfg.Slides.Incremental,
		},
		slidesFormats: toFormats(cfg.Slides.Formats),
		notesFormats:  toFormats(cfg.Notes.Formats),
	}
	if len(p.slidesFormats)+len(p.notesFormats) == 0 {
		return buildParams{}, mdslides.ErrNoTargets
	}
	return p, nil
}

// toFormats converts config format strings to library formats.
// Config validation already rejected unknown names.
func toFormats(names []string) []mdslides.Format {
	out := make([]mdslides.Format, len(names))
	for i, n := range names {
		out[i] = mdslides.Format(n)
	}
	return out
}

// buildBatch processes files concurrently using the service pool.
func buildBatch(ctx context.Context, pool Pool, files []FileToBuild, params buildParams) []FileOutcome {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	outcomes := make([]FileOutcome, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					outcomes[idx] = FileOutcome{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				outcomes[idx] = buildFile(ctx, svc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return outcomes
}

// buildFile processes a single source file and returns the outcome.
func buildFile(ctx context.Context, svc Builder, f FileToBuild, params buildParams) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{InputPath: f.InputPath}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		outcome.Duration = time.Since(start)
		return outcome
	}

	if err := os.MkdirAll(f.OutputDir, dirPermissions); err != nil {
		outcome.Err = fmt.Errorf("creating output directory: %w", err)
		outcome.Duration = time.Since(start)
		return outcome
	}

	results, err := svc.Build(ctx, mdslides.Input{
		Markdown: string(content),
		Meta:     params.meta,
		Slides:   params.slides,
	}, mdslides.Targets{
		Slides:    params.slidesFormats,
		Notes:     params.notesFormats,
		OutputDir: f.OutputDir,
		BaseName:  f.BaseName,
	})
	if err != nil {
		outcome.Err = err
	}
	outcome.Results = results
	outcome.Duration = time.Since(start)
	return outcome
}

// printResults outputs build results and returns the failed target count.
func printResults(outcomes []FileOutcome, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", o.InputPath, withHints(o.Err))
			continue
		}

		for _, r := range o.Results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(env.Stderr, "FAILED %s [%s/%s]: %s\n",
					o.InputPath, r.Stream, r.Format, withTargetHints(r))
				continue
			}

			succeeded++
			if quiet {
				continue
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n",
					o.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
			}
		}
	}

	if !quiet && succeeded+failed > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// withHints appends actionable hints to an error message when the failure
// matches a known scenario.
func withHints(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, engine.ErrPandocNotFound):
		msg += hints.ForPandocNotFound()
	case errors.Is(err, engine.ErrBrowserConnect):
		msg += hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound()
	}
	return msg
}

// withTargetHints is withHints plus the format-specific cases.
func withTargetHints(r mdslides.TargetResult) string {
	if r.Format == mdslides.FormatBeamer && errors.Is(r.Err, engine.ErrRender) {
		return r.Err.Error() + hints.ForBeamerFailure()
	}
	return withHints(r.Err)
}
