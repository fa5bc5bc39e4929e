package question

import (
	"strings"

	"github.com/spherical/question-splitter/internal/domain"
)

// YesNoMarker identifies yes/no questions by content.
const YesNoMarker = "Does the solution meet the goal?"

// Classifier assigns exactly one category to a cleaned question.
type Classifier struct {
	imageAware bool
	images     domain.PageImageIndex
}

// NewClassifier creates a classifier. When imageAware is false the image index is ignored.
func NewClassifier(imageAware bool, images domain.PageImageIndex) *Classifier {
	return &Classifier{imageAware: imageAware, images: images}
}

// Classify applies the precedence: image page, then yes/no marker, then multiple choice.
// Image presence wins even when the text carries the yes/no marker.
func (c *Classifier) Classify(text string, page int) domain.Category {
	if c.imageAware && c.images.Contains(page) {
		return domain.ImageBased
	}
	if strings.Contains(text, YesNoMarker) {
		return domain.YesNo
	}
	return domain.MultipleChoice
}
