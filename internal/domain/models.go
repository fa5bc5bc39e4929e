package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Category is the mutually exclusive class assigned to every question.
type Category int

const (
	MultipleChoice Category = iota
	YesNo
	ImageBased
)

// Categories lists every category in sink order.
var Categories = []Category{MultipleChoice, YesNo, ImageBased}

// String returns the human label used in logs and summaries.
func (c Category) String() string {
	switch c {
	case MultipleChoice:
		return "MCQ"
	case YesNo:
		return "yes/no"
	case ImageBased:
		return "image-based"
	default:
		return "unknown"
	}
}

// StoreType returns the persisted question_type value (MCQ, YES_NO, IMAGE).
func (c Category) StoreType() string {
	switch c {
	case MultipleChoice:
		return "MCQ"
	case YesNo:
		return "YES_NO"
	case ImageBased:
		return "IMAGE"
	default:
		return ""
	}
}

// PageImageIndex is the set of 1-based page numbers that contain at least one image.
type PageImageIndex map[int]struct{}

// NewPageImageIndex builds an index from page numbers. Non-positive pages are ignored.
func NewPageImageIndex(pages ...int) PageImageIndex {
	idx := make(PageImageIndex, len(pages))
	for _, p := range pages {
		if p > 0 {
			idx[p] = struct{}{}
		}
	}
	return idx
}

// Contains reports whether page holds an image. A nil index contains nothing.
func (idx PageImageIndex) Contains(page int) bool {
	_, ok := idx[page]
	return ok
}

// Pages returns the indexed pages in ascending order.
func (idx PageImageIndex) Pages() []int {
	pages := make([]int, 0, len(idx))
	for p := range idx {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// MarshalJSON encodes the index as a sorted page list.
func (idx PageImageIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(idx.Pages())
}

// UnmarshalJSON decodes a page list.
func (idx *PageImageIndex) UnmarshalJSON(data []byte) error {
	var pages []int
	if err := json.Unmarshal(data, &pages); err != nil {
		return err
	}
	*idx = NewPageImageIndex(pages...)
	return nil
}

// Document is the output of a TextSource for one run
type Document struct {
	Path       string         `json:"path"`
	Text       string         `json:"text"`
	PageCount  int            `json:"page_count"`
	ImagePages PageImageIndex `json:"image_pages"`
}

// RawBlock is the text between two consecutive delimiter occurrences.
type RawBlock struct {
	Index  int    // 1-based position in document order
	Text   string // delimiter excluded
	Offset int    // byte offset of the delimiter that opens the block
}

// Question is a cleaned, classified unit.
type Question struct {
	Text       string
	Category   Category
	SourcePage int // 0 when page correlation is not tracked
}

// QuestionSet holds the per-category sequences of one run, each in document order.
type QuestionSet struct {
	MultipleChoice []Question
	YesNo          []Question
	ImageBased     []Question
}

// Add appends q to the sequence for its category.
func (s *QuestionSet) Add(q Question) {
	switch q.Category {
	case YesNo:
		s.YesNo = append(s.YesNo, q)
	case ImageBased:
		s.ImageBased = append(s.ImageBased, q)
	default:
		s.MultipleChoice = append(s.MultipleChoice, q)
	}
}

// ByCategory returns the sequence for c.
func (s *QuestionSet) ByCategory(c Category) []Question {
	switch c {
	case YesNo:
		return s.YesNo
	case ImageBased:
		return s.ImageBased
	default:
		return s.MultipleChoice
	}
}

// Total returns the number of questions across all categories.
func (s *QuestionSet) Total() int {
	return len(s.MultipleChoice) + len(s.YesNo) + len(s.ImageBased)
}

// EventType represents the type of stream event
type EventType string

const (
	EventStart         EventType = "start"
	EventSourceLoaded  EventType = "source_loaded"
	EventSegmented     EventType = "segmented"
	EventClassified    EventType = "classified"
	EventSinkStarted   EventType = "sink_started"
	EventSinkCompleted EventType = "sink_completed"
	EventError         EventType = "error"
	EventComplete      EventType = "complete"
)

// StreamEvent represents an event emitted during processing
type StreamEvent struct {
	Type      EventType   `json:"type"`
	Count     int         `json:"count,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// RunStats contains metadata about one pipeline execution
type RunStats struct {
	RunID          string
	TotalTime      time.Duration
	PageCount      int
	ImagePages     int
	Blocks         int
	EmptyQuestions int
}
