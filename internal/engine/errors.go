package engine

import "errors"

// Sentinel errors for engine operations.
var (
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrRender         = errors.New("rendering failed")
	ErrPandocNotFound = errors.New("pandoc executable not found")

	// Chrome engine errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)
