// Package config loads and validates the YAML configuration for mdslides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdslides/internal/engine"
	"github.com/alnah/go-mdslides/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidEngine   = errors.New("invalid pdf engine")
)

// Field length limits. Config files may come from shared course repos,
// so oversized values are rejected rather than truncated.
const (
	MaxTitleLength       = 200 // Course or lecture title
	MaxNameLength        = 100 // Author name
	MaxDateLength        = 30  // "2025-12-31" or "auto"
	MaxInstituteLength   = 200 // University / department line
	MaxPathLength        = 2048
	MaxThemeLength       = 50 // reveal.js / Beamer theme name
	MaxAddrLength        = 253 + 6
	MaxSlideLevel        = 6
	MinDebounceMS        = 0
	MaxDebounceMS        = 10_000
	DefaultDebounceMS    = 300
	DefaultServeAddr     = "localhost:8080"
	DefaultSlideLevel    = 2
	DefaultRevealJSTheme = "white"
)

// PDF engine selectors for the notes stream.
const (
	PDFEnginePandoc = "pandoc"
	PDFEngineChrome = "chrome"
)

// Config holds all configuration for slide/notes generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Slides   SlidesConfig   `yaml:"slides"`
	Notes    NotesConfig    `yaml:"notes"`
	Engine   EngineConfig   `yaml:"engine"`
	Metadata MetadataConfig `yaml:"metadata"`
	Serve    ServeConfig    `yaml:"serve"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// SlidesConfig defines presentation output options.
type SlidesConfig struct {
	Formats     []string `yaml:"formats"`     // "revealjs", "pptx", "beamer"
	Theme       string   `yaml:"theme"`       // reveal.js/Beamer theme (default: "white")
	SlideLevel  int      `yaml:"slideLevel"`  // heading level starting a slide (default: 2)
	Incremental bool     `yaml:"incremental"` // reveal list items one at a time
}

// NotesConfig defines lecture notes output options.
type NotesConfig struct {
	Formats   []string `yaml:"formats"`   // "html", "pdf", "docx"
	PDFEngine string   `yaml:"pdfEngine"` // "pandoc" (LaTeX) or "chrome" (headless)
}

// EngineConfig defines external engine options.
type EngineConfig struct {
	PandocPath string `yaml:"pandocPath"` // pandoc binary (empty = $PATH lookup)
	Timeout    string `yaml:"timeout"`    // per-render timeout, e.g. "30s", "2m"
}

// MetadataConfig supplies defaults merged under each document's front matter.
type MetadataConfig struct {
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
	Date         string `yaml:"date"` // "auto" = today
	Institute    string `yaml:"institute"`
	Bibliography string `yaml:"bibliography"` // path passed to --citeproc
}

// ServeConfig defines preview server options.
type ServeConfig struct {
	Addr       string `yaml:"addr"`       // listen address (default: localhost:8080)
	DebounceMS int    `yaml:"debounceMs"` // rebuild debounce (default: 300)
}

// slidesFormats and notesFormats are the closed sets accepted per stream.
var (
	slidesFormats = map[string]bool{
		string(engine.FormatRevealJS): true,
		string(engine.FormatPPTX):     true,
		string(engine.FormatBeamer):   true,
	}
	notesFormats = map[string]bool{
		string(engine.FormatHTML): true,
		string(engine.FormatPDF):  true,
		string(engine.FormatDocx): true,
	}
)

// Validate checks field lengths and closed-set fields.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	for _, f := range c.Slides.Formats {
		if !slidesFormats[f] {
			return fmt.Errorf("%w: slides.formats: %q (must be revealjs, pptx, or beamer)", ErrInvalidFormat, f)
		}
	}
	if err := validateFieldLength("slides.theme", c.Slides.Theme, MaxThemeLength); err != nil {
		return err
	}
	if c.Slides.SlideLevel < 0 || c.Slides.SlideLevel > MaxSlideLevel {
		return fmt.Errorf("slides.slideLevel: must be between 0 and %d, got %d", MaxSlideLevel, c.Slides.SlideLevel)
	}

	for _, f := range c.Notes.Formats {
		if !notesFormats[f] {
			return fmt.Errorf("%w: notes.formats: %q (must be html, pdf, or docx)", ErrInvalidFormat, f)
		}
	}
	switch c.Notes.PDFEngine {
	case "", PDFEnginePandoc, PDFEngineChrome:
	default:
		return fmt.Errorf("%w: %q (must be pandoc or chrome)", ErrInvalidEngine, c.Notes.PDFEngine)
	}

	if err := validateFieldLength("engine.pandocPath", c.Engine.PandocPath, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("metadata.title", c.Metadata.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("metadata.author", c.Metadata.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("metadata.date", c.Metadata.Date, MaxDateLength); err != nil {
		return err
	}
	if err := validateFieldLength("metadata.institute", c.Metadata.Institute, MaxInstituteLength); err != nil {
		return err
	}
	if err := validateFieldLength("metadata.bibliography", c.Metadata.Bibliography, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("serve.addr", c.Serve.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Serve.DebounceMS < MinDebounceMS || c.Serve.DebounceMS > MaxDebounceMS {
		return fmt.Errorf("serve.debounceMs: must be between %d and %d, got %d", MinDebounceMS, MaxDebounceMS, c.Serve.DebounceMS)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// reveal.js slides and HTML notes, default theme, local preview address.
func DefaultConfig() *Config {
	return &Config{
		Slides: SlidesConfig{
			Formats:    []string{string(engine.FormatRevealJS)},
			Theme:      DefaultRevealJSTheme,
			SlideLevel: DefaultSlideLevel,
		},
		Notes: NotesConfig{
			Formats:   []string{string(engine.FormatHTML)},
			PDFEngine: PDFEnginePandoc,
		},
		Serve: ServeConfig{
			Addr:       DefaultServeAddr,
			DebounceMS: DefaultDebounceMS,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdslides/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdslides", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
