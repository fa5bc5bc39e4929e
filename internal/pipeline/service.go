// Package pipeline runs one load, partition and persist pass.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
	"github.com/spherical/question-splitter/internal/question"
)

// Service orchestrates a single run: load text, partition it, write every sink.
type Service struct {
	source  domain.TextSource
	sinks   []domain.Sink
	opts    question.Options
	logger  *observability.Logger
	handler domain.EventHandler
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *observability.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithEventHandler registers a progress callback.
func WithEventHandler(h domain.EventHandler) Option {
	return func(s *Service) { s.handler = h }
}

// NewService creates a new pipeline service. Sinks are written in the order given.
func NewService(src domain.TextSource, sinks []domain.Sink, opts question.Options, options ...Option) *Service {
	s := &Service{
		source: src,
		sinks:  sinks,
		opts:   opts,
		logger: observability.Nop(),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Process handles the complete run. The returned set is non-nil whenever
// partitioning happened, even if a sink failed afterwards.
func (s *Service) Process(ctx context.Context) (*domain.QuestionSet, *domain.RunStats, error) {
	startTime := time.Now()
	stats := &domain.RunStats{RunID: uuid.NewString()}

	ctx = observability.ContextWithRunID(ctx, stats.RunID)
	logger := s.logger.WithContext(ctx).WithOperation("process")

	s.emit(domain.StreamEvent{
		Type:    domain.EventStart,
		Payload: fmt.Sprintf("Starting run for %s", s.source.Describe()),
	})
	logger.Info().Str("source", s.source.Describe()).Msg("Loading source")

	doc, err := s.source.Load(ctx)
	if err != nil {
		s.emitError(err)
		logger.Error().Err(err).Msg("Source load failed")
		return nil, stats, err
	}

	stats.PageCount = doc.PageCount
	stats.ImagePages = len(doc.ImagePages)
	s.emit(domain.StreamEvent{Type: domain.EventSourceLoaded, Count: doc.PageCount, Payload: doc.Path})
	logger.Info().
		Int("pages", doc.PageCount).
		Int("image_pages", stats.ImagePages).
		Msg("Source loaded")

	if s.opts.ImageAware && s.opts.PageMode != question.PageModeFormFeed {
		logger.Debug().Msg("Correlating blocks to pages by block ordinal")
	}

	set := question.Partition(doc, s.opts)
	stats.Blocks = set.Total()
	stats.EmptyQuestions = countEmpty(set)

	s.emit(domain.StreamEvent{Type: domain.EventSegmented, Count: stats.Blocks})
	s.emit(domain.StreamEvent{Type: domain.EventClassified, Count: stats.Blocks, Payload: set})
	logger.Info().
		Int("blocks", stats.Blocks).
		Int("mcq", len(set.MultipleChoice)).
		Int("yes_no", len(set.YesNo)).
		Int("image", len(set.ImageBased)).
		Msg("Questions classified")

	if stats.EmptyQuestions > 0 {
		logger.Warn().Int("empty", stats.EmptyQuestions).Msg("Retaining questions with empty text")
	}

	for _, sink := range s.sinks {
		if err := ctx.Err(); err != nil {
			s.emitError(err)
			return set, stats, err
		}

		s.emit(domain.StreamEvent{Type: domain.EventSinkStarted, Payload: sink.Name()})
		if err := sink.Write(ctx, set); err != nil {
			s.emitError(err)
			logger.Error().Err(err).Str("sink", sink.Name()).Msg("Sink write failed")
			return set, stats, err
		}
		s.emit(domain.StreamEvent{Type: domain.EventSinkCompleted, Count: set.Total(), Payload: sink.Name()})
	}

	stats.TotalTime = time.Since(startTime)
	s.emit(domain.StreamEvent{
		Type:    domain.EventComplete,
		Count:   stats.Blocks,
		Payload: fmt.Sprintf("Run complete: %d questions in %v", stats.Blocks, stats.TotalTime.Round(time.Millisecond)),
	})
	logger.Info().Dur("duration", stats.TotalTime).Msg("Run complete")

	return set, stats, nil
}

func (s *Service) emit(event domain.StreamEvent) {
	if s.handler == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.handler(event)
}

func (s *Service) emitError(err error) {
	s.emit(domain.StreamEvent{Type: domain.EventError, Payload: err.Error()})
}

func countEmpty(set *domain.QuestionSet) int {
	n := 0
	for _, c := range domain.Categories {
		for _, q := range set.ByCategory(c) {
			if q.Text == "" {
				n++
			}
		}
	}
	return n
}
