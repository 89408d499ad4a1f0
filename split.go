package mdslides

import (
	"fmt"

	"github.com/alnah/go-mdslides/internal/dateutil"
	"github.com/alnah/go-mdslides/internal/frontmatter"
	"github.com/alnah/go-mdslides/internal/router"
)

// docHeader is the front matter block prepended to each derived document.
// Field order here is the order in the emitted YAML.
type docHeader struct {
	Title        string `yaml:"title,omitempty"`
	Author       string `yaml:"author,omitempty"`
	Date         string `yaml:"date,omitempty"`
	Institute    string `yaml:"institute,omitempty"`
	Bibliography string `yaml:"bibliography,omitempty"`

	// Engine configuration, slides stream only.
	Theme       string `yaml:"theme,omitempty"`
	SlideLevel  int    `yaml:"slide-level,omitempty"`
	Incremental bool   `yaml:"incremental,omitempty"`
}

// Split transforms one annotated source into slides and notes sources.
//
// The source is preprocessed (line-ending normalization, blank-line
// compression), its front matter is merged over input.Meta field by field,
// the body is routed by directives, and each stream gets a front matter
// header derived from the resolved metadata. The slides header additionally
// carries the presentation engine configuration.
func (s *Service) Split(input Input) (SplitResult, error) {
	if input.Markdown == "" {
		return SplitResult{}, ErrEmptyMarkdown
	}

	content := s.preprocessor.Preprocess(input.Markdown)

	rawMeta, body, had, err := frontmatter.Split(content)
	if err != nil {
		return SplitResult{}, fmt.Errorf("%w: %v", ErrFrontMatterParse, err)
	}

	meta := input.Meta
	if had {
		var fromDoc Metadata
		if err := frontmatter.Decode(rawMeta, &fromDoc); err != nil {
			return SplitResult{}, fmt.Errorf("%w: %v", ErrFrontMatterParse, err)
		}
		meta = mergeMetadata(meta, fromDoc)
	}

	resolvedDate, err := dateutil.Resolve(meta.Date, s.cfg.now)
	if err != nil {
		return SplitResult{}, fmt.Errorf("%w: %v", ErrMetadataResolve, err)
	}
	meta.Date = resolvedDate

	routed := router.Route(body)

	slidesDoc, err := composeDocument(slidesHeader(meta, input.Slides), routed.Slides)
	if err != nil {
		return SplitResult{}, err
	}
	notesDoc, err := composeDocument(notesHeader(meta), routed.Notes)
	if err != nil {
		return SplitResult{}, err
	}

	return SplitResult{Slides: slidesDoc, Notes: notesDoc, Meta: meta}, nil
}

// mergeMetadata overlays document front matter on the caller's defaults.
// Non-empty front matter fields win.
func mergeMetadata(defaults, fromDoc Metadata) Metadata {
	out := defaults
	if fromDoc.Title != "" {
		out.Title = fromDoc.Title
	}
	if fromDoc.Author != "" {
		out.Author = fromDoc.Author
	}
	if fromDoc.Date != "" {
		out.Date = fromDoc.Date
	}
	if fromDoc.Institute != "" {
		out.Institute = fromDoc.Institute
	}
	if fromDoc.Bibliography != "" {
		out.Bibliography = fromDoc.Bibliography
	}
	return out
}

// slidesHeader builds the slides front matter: document metadata plus the
// presentation engine configuration.
func slidesHeader(meta Metadata, opts SlideOptions) docHeader {
	return docHeader{
		Title:        meta.Title,
		Author:       meta.Author,
		Date:         meta.Date,
		Institute:    meta.Institute,
		Bibliography: meta.Bibliography,
		Theme:        opts.Theme,
		SlideLevel:   opts.SlideLevel,
		Incremental:  opts.Incremental,
	}
}

// notesHeader builds the notes front matter: document metadata only.
func notesHeader(meta Metadata) docHeader {
	return docHeader{
		Title:        meta.Title,
		Author:       meta.Author,
		Date:         meta.Date,
		Institute:    meta.Institute,
		Bibliography: meta.Bibliography,
	}
}

// composeDocument prepends the header block unless it is entirely empty,
// so undecorated inputs stay undecorated.
func composeDocument(h docHeader, body string) (string, error) {
	if h == (docHeader{}) {
		return body, nil
	}
	return frontmatter.Compose(h, body)
}
