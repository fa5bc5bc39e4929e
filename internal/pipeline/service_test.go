package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/question"
)

type stubSource struct {
	doc *domain.Document
	err error
}

func (s *stubSource) Load(ctx context.Context) (*domain.Document, error) {
	return s.doc, s.err
}

func (s *stubSource) Describe() string {
	return "stub"
}

type recordingSink struct {
	name  string
	err   error
	calls int
	got   *domain.QuestionSet
	order *[]string
}

func (s *recordingSink) Name() string {
	return s.name
}

func (s *recordingSink) Write(ctx context.Context, set *domain.QuestionSet) error {
	s.calls++
	s.got = set
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
	return s.err
}

const sampleText = "Header\n" +
	"Question #1 Which is correct? A. x B. y\n" +
	"Question #2 Does the solution meet the goal? A. Yes B. No\n" +
	"Question #3 See diagram.\n" +
	"Question #4 https://example.com 1/20"

func TestService_Process(t *testing.T) {
	src := &stubSource{doc: &domain.Document{
		Path:       "sample.pdf",
		Text:       sampleText,
		PageCount:  4,
		ImagePages: domain.NewPageImageIndex(3),
	}}
	var order []string
	text := &recordingSink{name: "text", order: &order}
	db := &recordingSink{name: "database", order: &order}

	var events []domain.EventType
	svc := NewService(src, []domain.Sink{text, db},
		question.Options{ImageAware: true, PageMode: question.PageModeProxy},
		WithEventHandler(func(e domain.StreamEvent) {
			assert.False(t, e.Timestamp.IsZero())
			events = append(events, e.Type)
		}),
	)

	set, stats, err := svc.Process(context.Background())
	require.NoError(t, err)

	assert.Len(t, set.MultipleChoice, 2)
	assert.Len(t, set.YesNo, 1)
	require.Len(t, set.ImageBased, 1)
	assert.Equal(t, "See diagram.", set.ImageBased[0].Text)

	assert.Equal(t, []string{"text", "database"}, order)
	assert.Same(t, set, text.got)
	assert.Same(t, set, db.got)

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 4, stats.Blocks)
	assert.Equal(t, 4, stats.PageCount)
	assert.Equal(t, 1, stats.ImagePages)
	assert.Equal(t, 1, stats.EmptyQuestions)

	assert.Equal(t, []domain.EventType{
		domain.EventStart,
		domain.EventSourceLoaded,
		domain.EventSegmented,
		domain.EventClassified,
		domain.EventSinkStarted,
		domain.EventSinkCompleted,
		domain.EventSinkStarted,
		domain.EventSinkCompleted,
		domain.EventComplete,
	}, events)
}

func TestService_SourceUnavailable(t *testing.T) {
	src := &stubSource{err: domain.SourceUnavailable("missing", errors.New("no such file"))}
	sink := &recordingSink{name: "text"}

	var last domain.EventType
	svc := NewService(src, []domain.Sink{sink}, question.Options{},
		WithEventHandler(func(e domain.StreamEvent) { last = e.Type }))

	set, _, err := svc.Process(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeSource))
	assert.Nil(t, set)
	assert.Zero(t, sink.calls)
	assert.Equal(t, domain.EventError, last)
}

func TestService_SinkFailureStopsLaterSinks(t *testing.T) {
	src := &stubSource{doc: &domain.Document{Text: "Question #1 a"}}
	failing := &recordingSink{name: "text", err: domain.SinkFailure("disk full", nil)}
	next := &recordingSink{name: "database"}

	svc := NewService(src, []domain.Sink{failing, next}, question.Options{})

	set, _, err := svc.Process(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeSink))
	require.NotNil(t, set)
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, next.calls)
}

func TestService_CancelledBeforeSinks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &stubSource{doc: &domain.Document{Text: "Question #1 a"}}
	sink := &recordingSink{name: "text"}

	_, _, err := NewService(src, []domain.Sink{sink}, question.Options{}).Process(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sink.calls)
}

func TestService_NotImageAwareIgnoresImages(t *testing.T) {
	src := &stubSource{doc: &domain.Document{
		Text:       sampleText,
		ImagePages: domain.NewPageImageIndex(1, 2, 3, 4),
	}}

	set, _, err := NewService(src, nil, question.Options{}).Process(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.ImageBased)
	assert.Len(t, set.MultipleChoice, 3)
	assert.Len(t, set.YesNo, 1)
}
