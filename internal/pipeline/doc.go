// Package pipeline implements the markdown processing stages that run
// before routing and rendering:
//
//   - source preprocessing (line-ending normalization, blank-line compression)
//   - markdown to HTML conversion via Goldmark for the built-in preview
//
// Slide/notes routing lives in internal/router; rendering through external
// engines (Pandoc, headless Chrome) lives in internal/engine. This package
// never touches the filesystem.
package pipeline
