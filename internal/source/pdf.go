// Package source implements the Text Source collaborators: PDF documents,
// pre-extracted text dumps, and a caching wrapper around either.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
)

// PageBreak terminates every page in extracted text, as in pdfminer text dumps.
const PageBreak = "\f"

// ProgressFunc reports that page of total has been extracted.
type ProgressFunc func(page, total int)

// PDFSource extracts text with MuPDF (go-fitz) and, optionally, the pages holding images.
type PDFSource struct {
	path         string
	detectImages bool
	detector     *ImageDetector
	onPage       ProgressFunc
	logger       *observability.Logger
}

// PDFOption configures a PDFSource.
type PDFOption func(*PDFSource)

// WithImageDetection enables per-page image detection.
func WithImageDetection(enabled bool) PDFOption {
	return func(s *PDFSource) { s.detectImages = enabled }
}

// WithProgress registers a per-page progress callback.
func WithProgress(fn ProgressFunc) PDFOption {
	return func(s *PDFSource) { s.onPage = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *observability.Logger) PDFOption {
	return func(s *PDFSource) { s.logger = logger }
}

// NewPDFSource creates a source for the PDF at path.
func NewPDFSource(path string, opts ...PDFOption) *PDFSource {
	s := &PDFSource{
		path:     path,
		detector: NewImageDetector(),
		logger:   observability.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Describe implements domain.TextSource.
func (s *PDFSource) Describe() string {
	return "pdf:" + s.path
}

// CacheVariant implements PathSource. Image detection changes the Document.
func (s *PDFSource) CacheVariant() []string {
	return []string{"pdf", "images=" + strconv.FormatBool(s.detectImages)}
}

// Path returns the document path.
func (s *PDFSource) Path() string {
	return s.path
}

// Load implements domain.TextSource.
func (s *PDFSource) Load(ctx context.Context) (*domain.Document, error) {
	if err := NewValidator(".pdf").ValidatePath(s.path); err != nil {
		return nil, err
	}

	text, pageCount, err := s.extractText(ctx)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Path:       s.path,
		Text:       text,
		PageCount:  pageCount,
		ImagePages: domain.NewPageImageIndex(),
	}

	if s.detectImages {
		images, err := s.detector.Detect(ctx, s.path)
		if err != nil {
			return nil, err
		}
		doc.ImagePages = images
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("pages", pageCount).
		Ints("image_pages", doc.ImagePages.Pages()).
		Msg("PDF extracted")

	return doc, nil
}

func (s *PDFSource) extractText(ctx context.Context) (string, int, error) {
	doc, err := fitz.New(s.path)
	if err != nil {
		return "", 0, domain.SourceUnavailable("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	var b strings.Builder

	for i := 0; i < pageCount; i++ {
		select {
		case <-ctx.Done():
			return "", 0, ctx.Err()
		default:
		}

		pageText, err := doc.Text(i)
		if err != nil {
			return "", 0, domain.SourceUnavailable(fmt.Sprintf("failed to extract text of page %d", i+1), err)
		}

		b.WriteString(pageText)
		b.WriteString(PageBreak)

		if s.onPage != nil {
			s.onPage(i+1, pageCount)
		}
	}

	return b.String(), pageCount, nil
}
