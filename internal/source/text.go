package source

import (
	"context"
	"os"
	"strings"

	"github.com/spherical/question-splitter/internal/domain"
)

// TextFileSource reads a pre-extracted text dump. It carries no image information.
type TextFileSource struct {
	path string
}

// NewTextFileSource creates a source for the text file at path.
func NewTextFileSource(path string) *TextFileSource {
	return &TextFileSource{path: path}
}

// Describe implements domain.TextSource.
func (s *TextFileSource) Describe() string {
	return "text:" + s.path
}

// CacheVariant implements PathSource.
func (s *TextFileSource) CacheVariant() []string {
	return []string{"text"}
}

// Path returns the document path.
func (s *TextFileSource) Path() string {
	return s.path
}

// Load implements domain.TextSource.
func (s *TextFileSource) Load(ctx context.Context) (*domain.Document, error) {
	if err := NewValidator(".txt", ".text", "").ValidatePath(s.path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, domain.SourceUnavailable("failed to read text file", err)
	}
	text := string(data)

	return &domain.Document{
		Path:       s.path,
		Text:       text,
		PageCount:  countPages(text),
		ImagePages: domain.NewPageImageIndex(),
	}, nil
}

// countPages counts form-feed terminated pages plus a trailing unterminated one.
func countPages(text string) int {
	if text == "" {
		return 0
	}
	pages := strings.Count(text, PageBreak)
	if !strings.HasSuffix(text, PageBreak) {
		pages++
	}
	return pages
}
