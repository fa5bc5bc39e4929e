package domain

import "context"

// TextSource resolves a document into its extracted text and page image index.
type TextSource interface {
	// Load reads the document once. Failures are SourceUnavailable errors.
	Load(ctx context.Context) (*Document, error)

	// Describe returns a short human-readable identifier for logs.
	Describe() string
}

// Sink persists the classified collections of one run
type Sink interface {
	Name() string

	// Write receives the three ordered sequences. Failures are SinkFailure errors.
	Write(ctx context.Context, set *QuestionSet) error
}

// EventHandler receives pipeline progress events. It must not block.
type EventHandler func(StreamEvent)
