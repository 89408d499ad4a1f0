package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() unexpected error: %v", err)
	}
	if len(cfg.Slides.Formats) != 1 || cfg.Slides.Formats[0] != "revealjs" {
		t.Errorf("Slides.Formats = %v, want [revealjs]", cfg.Slides.Formats)
	}
	if len(cfg.Notes.Formats) != 1 || cfg.Notes.Formats[0] != "html" {
		t.Errorf("Notes.Formats = %v, want [html]", cfg.Notes.Formats)
	}
	if cfg.Slides.SlideLevel != DefaultSlideLevel {
		t.Errorf("SlideLevel = %d, want %d", cfg.Slides.SlideLevel, DefaultSlideLevel)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid default",
			mutate: func(*Config) {},
		},
		{
			name: "unknown slides format",
			mutate: func(c *Config) {
				c.Slides.Formats = []string{"keynote"}
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name: "notes format not valid for slides",
			mutate: func(c *Config) {
				c.Slides.Formats = []string{"docx"}
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name: "unknown notes format",
			mutate: func(c *Config) {
				c.Notes.Formats = []string{"epub"}
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name: "invalid pdf engine",
			mutate: func(c *Config) {
				c.Notes.PDFEngine = "wkhtmltopdf"
			},
			wantErr: ErrInvalidEngine,
		},
		{
			name: "empty pdf engine allowed",
			mutate: func(c *Config) {
				c.Notes.PDFEngine = ""
			},
		},
		{
			name: "title too long",
			mutate: func(c *Config) {
				c.Metadata.Title = strings.Repeat("x", MaxTitleLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "theme too long",
			mutate: func(c *Config) {
				c.Slides.Theme = strings.Repeat("x", MaxThemeLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "slide level out of range",
			mutate: func(c *Config) {
				c.Slides.SlideLevel = 7
			},
			wantErr: nil, // plain fmt error, checked by non-nil below
		},
		{
			name: "debounce out of range",
			mutate: func(c *Config) {
				c.Serve.DebounceMS = MaxDebounceMS + 1
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			switch tt.name {
			case "valid default", "empty pdf engine allowed":
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			case "slide level out of range", "debounce out of range":
				if err == nil {
					t.Error("Validate() expected error")
				}
			default:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "course.yaml")
	content := `slides:
  formats:
    - revealjs
    - pptx
  theme: black
notes:
  formats:
    - html
    - pdf
  pdfEngine: chrome
metadata:
  title: Formal Methods in Medical Imaging
  author: Course Staff
  date: auto
  bibliography: refs.bib
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if got := cfg.Slides.Formats; len(got) != 2 || got[1] != "pptx" {
		t.Errorf("Slides.Formats = %v", got)
	}
	if cfg.Slides.Theme != "black" {
		t.Errorf("Slides.Theme = %q, want black", cfg.Slides.Theme)
	}
	if cfg.Notes.PDFEngine != PDFEngineChrome {
		t.Errorf("Notes.PDFEngine = %q, want chrome", cfg.Notes.PDFEngine)
	}
	if cfg.Metadata.Bibliography != "refs.bib" {
		t.Errorf("Metadata.Bibliography = %q", cfg.Metadata.Bibliography)
	}
	// Unset sections keep defaults.
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr = %q, want default", cfg.Serve.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		if err := os.WriteFile(path, []byte("sildes:\n  theme: x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("slides:\n  formats:\n    - keynote\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("error = %v, want ErrInvalidFormat", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	if isFilePath("course") {
		t.Error("isFilePath(course) = true, want false")
	}
	if !isFilePath("./course.yaml") {
		t.Error("isFilePath(./course.yaml) = false, want true")
	}
}
