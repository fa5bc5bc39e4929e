// Package question splits extracted exam text into cleaned, classified questions.
package question

import (
	"regexp"

	"github.com/spherical/question-splitter/internal/domain"
)

// delimiterPattern marks the start of each question. Case-sensitive, exact.
var delimiterPattern = regexp.MustCompile(`Question #\d+`)

// Segmenter splits raw document text on the question delimiter.
type Segmenter struct {
	delimiter *regexp.Regexp
}

// NewSegmenter creates a segmenter using the "Question #<n>" delimiter.
func NewSegmenter() *Segmenter {
	return &Segmenter{delimiter: delimiterPattern}
}

// Split returns one block per delimiter occurrence, in document order.
// Text before the first delimiter is discarded. Zero occurrences yield an empty slice.
func (s *Segmenter) Split(text string) []domain.RawBlock {
	locs := s.delimiter.FindAllStringIndex(text, -1)
	blocks := make([]domain.RawBlock, 0, len(locs))

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, domain.RawBlock{
			Index:  i + 1,
			Text:   text[loc[1]:end],
			Offset: loc[0],
		})
	}

	return blocks
}
