package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdslides/internal/server"
	"github.com/alnah/go-mdslides/internal/watch"
)

// shutdownTimeout bounds graceful HTTP shutdown on exit.
const shutdownTimeout = 5 * time.Second

// runServeCmd runs the watch-rebuild-reload loop until ctx is cancelled.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadAndMerge(&flags.build)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Serve.Addr = flags.addr
	}
	if flags.debounce > 0 {
		cfg.Serve.DebounceMS = flags.debounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	// Preview serves the output directory, so one must be pinned down:
	// fall back to the source's own directory when nothing is configured.
	outputDir := resolveOutputDir(flags.build.output, cfg)
	if outputDir == "" {
		outputDir = sourceDir(inputPath)
	}

	params, err := resolveParams(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(env, flags.build.common)

	// Rebuilds are serial: the watcher already coalesces change bursts, and
	// overlapping pandoc runs on the same outputs would corrupt them.
	pool := NewServicePool(1, opts...)
	defer pool.Close()
	svc := pool.Acquire()
	defer pool.Release(svc)

	rebuild := func() int {
		files, err := discoverFiles(inputPath, resolveOutputDir(flags.build.output, cfg))
		if err != nil {
			logger.Error("discovery failed", slog.String("error", err.Error()))
			return 1
		}
		outcomes := buildBatch(ctx, singlePool{svc}, files, params)
		return printResults(outcomes, flags.build.common.quiet, flags.build.common.verbose, env)
	}

	// Initial build: failures are reported but do not stop the server, so a
	// broken document can be fixed while watching.
	if failed := rebuild(); failed > 0 {
		logger.Warn("initial build had failures", slog.Int("failed", failed))
	}

	srv := server.New(outputDir, logger)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	httpErr := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", slog.String("addr", cfg.Serve.Addr))
		httpErr <- httpSrv.ListenAndServe()
	}()

	watcher := watch.New(time.Duration(cfg.Serve.DebounceMS)*time.Millisecond, logger)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Run(ctx, inputPath, func(paths []string) {
			logger.Info("rebuilding", slog.Int("changed", len(paths)))
			rebuild()
			srv.NotifyReload()
		})
	}()

	select {
	case err := <-httpErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	case err := <-watchErr:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return err
	}
}

// singlePool adapts one held service to the Pool interface for buildBatch.
type singlePool struct {
	svc Builder
}

func (p singlePool) Acquire() Builder { return p.svc }
func (p singlePool) Release(Builder)  {}
func (p singlePool) Size() int        { return 1 }

// sourceDir returns the directory containing the input, or the input itself
// when it already is one.
func sourceDir(inputPath string) string {
	if fi, err := os.Stat(inputPath); err == nil && fi.IsDir() {
		return inputPath
	}
	return filepath.Dir(inputPath)
}

// newLogger builds the serve-mode logger from verbosity flags.
func newLogger(env *Environment, common commonFlags) *slog.Logger {
	level := slog.LevelInfo
	if common.verbose {
		level = slog.LevelDebug
	}
	if common.quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}
