// Package sink persists classified question sets.
package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
)

// questionSeparator follows every written question.
const questionSeparator = "\n\n"

// TextFileSink writes one plain-text file per category.
type TextFileSink struct {
	paths  map[domain.Category]string
	logger *observability.Logger
}

// NewTextFileSink creates a sink. Categories with an empty path are skipped.
func NewTextFileSink(mcqPath, yesNoPath, imagePath string, logger *observability.Logger) *TextFileSink {
	if logger == nil {
		logger = observability.Nop()
	}
	return &TextFileSink{
		paths: map[domain.Category]string{
			domain.MultipleChoice: mcqPath,
			domain.YesNo:          yesNoPath,
			domain.ImageBased:     imagePath,
		},
		logger: logger.WithComponent("text_sink"),
	}
}

// Name identifies the sink in logs.
func (s *TextFileSink) Name() string {
	return "text"
}

// Path returns the destination for c, or "" when c is not written.
func (s *TextFileSink) Path(c domain.Category) string {
	return s.paths[c]
}

// Write writes the MCQ, YES_NO and IMAGE files in that order.
func (s *TextFileSink) Write(ctx context.Context, set *domain.QuestionSet) error {
	for _, c := range domain.Categories {
		path := s.paths[c]
		if path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return domain.SinkFailure("text sink cancelled", err)
		}

		questions := set.ByCategory(c)
		if err := WriteFile(path, questions); err != nil {
			return err
		}

		s.logger.Debug().
			Str("category", c.String()).
			Str("path", path).
			Int("count", len(questions)).
			Msg("Wrote question file")
	}
	return nil
}

// WriteFile creates or truncates path and writes each question's trimmed text
// followed by a blank line.
func WriteFile(path string, questions []domain.Question) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.SinkFailure(fmt.Sprintf("create %s", path), err)
	}

	w := bufio.NewWriter(f)
	for _, q := range questions {
		if _, err := w.WriteString(strings.TrimSpace(q.Text) + questionSeparator); err != nil {
			f.Close()
			return domain.SinkFailure(fmt.Sprintf("write %s", path), err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return domain.SinkFailure(fmt.Sprintf("flush %s", path), err)
	}
	if err := f.Close(); err != nil {
		return domain.SinkFailure(fmt.Sprintf("close %s", path), err)
	}
	return nil
}
