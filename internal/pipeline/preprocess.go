package pipeline

import "regexp"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Preprocessor defines the contract for source preprocessing.
type Preprocessor interface {
	Preprocess(content string) string
}

// SourcePreprocessor normalizes lecture sources before routing. The router
// matches directives line by line, so line endings must be normalized first
// or a directive followed by CR would never match.
type SourcePreprocessor struct{}

// Preprocess applies all transformations in order: line endings first,
// then blank-line compression.
func (p *SourcePreprocessor) Preprocess(content string) string {
	content = NormalizeLineEndings(content)
	content = CompressBlankLines(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CompressBlankLines limits consecutive blank lines to 2 maximum.
func CompressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
