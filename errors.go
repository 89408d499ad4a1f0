package mdslides

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidTarget    = errors.New("invalid render target")
	ErrNoTargets        = errors.New("no render targets requested")
	ErrWriteOutput      = errors.New("writing output failed")
	ErrMetadataResolve  = errors.New("resolving metadata failed")
	ErrFrontMatterParse = errors.New("parsing front matter failed")
)
