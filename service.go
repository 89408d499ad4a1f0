package mdslides

import (
	"context"
	"time"

	"github.com/alnah/go-mdslides/internal/engine"
	"github.com/alnah/go-mdslides/internal/pipeline"
)

// preprocessor abstracts source preprocessing.
type preprocessor interface {
	Preprocess(content string) string
}

// htmlConverter abstracts the markdown-to-HTML preview conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// pdfConverter abstracts HTML-to-PDF conversion for the Chrome path.
type pdfConverter interface {
	PDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Service orchestrates the split-and-render pipeline.
type Service struct {
	cfg           serviceConfig
	preprocessor  preprocessor
	htmlConverter htmlConverter
	renderer      engine.Engine
	pdfConverter  pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithChromePDF).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			now:     time.Now,
		},
		preprocessor:  &pipeline.SourcePreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create engines if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = engine.NewPandocEngine(s.cfg.pandocPath)
	}
	if s.pdfConverter == nil && s.cfg.chromePDF {
		s.pdfConverter = engine.NewChromeEngine(s.cfg.timeout)
	}

	return s
}

// Close releases resources (the headless Chrome browser, if one was used).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}
