package question

import "github.com/spherical/question-splitter/internal/domain"

// Options configures one partition run.
type Options struct {
	ImageAware bool
	PageMode   PageMode
}

// Partition runs segmentation, cleaning and classification over one document.
// It is a pure function of its inputs; every block lands in exactly one sequence,
// including blocks that clean to the empty string.
func Partition(doc *domain.Document, opts Options) *domain.QuestionSet {
	set := &domain.QuestionSet{}
	if doc == nil {
		return set
	}

	blocks := NewSegmenter().Split(doc.Text)
	locator := NewPageLocator(opts.PageMode, doc.Text)
	classifier := NewClassifier(opts.ImageAware, doc.ImagePages)

	for _, block := range blocks {
		text := Clean(block.Text)
		page := locator.Page(block)
		set.Add(domain.Question{
			Text:       text,
			Category:   classifier.Classify(text, page),
			SourcePage: page,
		})
	}

	return set
}
