package main

import (
	"errors"
	"os"

	mdslides "github.com/alnah/go-mdslides"
	"github.com/alnah/go-mdslides/internal/config"
	"github.com/alnah/go-mdslides/internal/engine"
)

// Exit codes for the mdslides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All targets rendered
	ExitGeneral = 1 // General/unexpected error (including failed targets)
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitEngine  = 4 // Pandoc or browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, engine.ErrPandocNotFound) ||
		errors.Is(err, engine.ErrRender) ||
		errors.Is(err, engine.ErrBrowserConnect) ||
		errors.Is(err, engine.ErrPageCreate) ||
		errors.Is(err, engine.ErrPageLoad) ||
		errors.Is(err, engine.ErrPDFGeneration) {
		return ExitEngine
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, mdslides.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, mdslides.ErrEmptyMarkdown) ||
		errors.Is(err, mdslides.ErrNoTargets) ||
		errors.Is(err, mdslides.ErrInvalidTarget) ||
		errors.Is(err, mdslides.ErrMetadataResolve) ||
		errors.Is(err, mdslides.ErrFrontMatterParse) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
