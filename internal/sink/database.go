package sink

import (
	"context"
	"fmt"

	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
	"github.com/spherical/question-splitter/internal/storage"
)

// CommitMode controls transaction granularity of the database sink.
type CommitMode string

const (
	// CommitRecord commits each question, with its image link, on its own.
	CommitRecord CommitMode = "record"
	// CommitBatch commits the whole set at once.
	CommitBatch CommitMode = "batch"
)

// DatabaseSink inserts questions into the questions and image_questions tables.
// The handle is owned by the caller.
type DatabaseSink struct {
	db     *storage.DB
	mode   CommitMode
	logger *observability.Logger

	saved int
}

// NewDatabaseSink creates a sink over an open handle.
func NewDatabaseSink(db *storage.DB, mode CommitMode, logger *observability.Logger) *DatabaseSink {
	if mode == "" {
		mode = CommitRecord
	}
	if logger == nil {
		logger = observability.Nop()
	}
	return &DatabaseSink{
		db:     db,
		mode:   mode,
		logger: logger.WithComponent("database_sink"),
	}
}

// Name identifies the sink in logs.
func (s *DatabaseSink) Name() string {
	return "database"
}

// Saved returns the number of questions committed by the last Write.
func (s *DatabaseSink) Saved() int {
	return s.saved
}

// Write stores MCQ, then YES_NO, then IMAGE questions.
func (s *DatabaseSink) Write(ctx context.Context, set *domain.QuestionSet) error {
	s.saved = 0

	if s.mode == CommitBatch {
		err := s.db.WithTx(ctx, func(repo *storage.QuestionRepository) error {
			for _, c := range domain.Categories {
				for _, q := range set.ByCategory(c) {
					if err := insert(ctx, repo, q); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return domain.SinkFailure("batch insert failed", err)
		}
		s.saved = set.Total()
		s.logger.Info().Int("saved", s.saved).Str("mode", string(s.mode)).Msg("Questions saved")
		return nil
	}

	for _, c := range domain.Categories {
		for i, q := range set.ByCategory(c) {
			err := s.db.WithTx(ctx, func(repo *storage.QuestionRepository) error {
				return insert(ctx, repo, q)
			})
			if err != nil {
				s.logger.Error().
					Err(err).
					Str("category", c.String()).
					Int("index", i).
					Int("committed", s.saved).
					Msg("Question insert failed")
				return domain.SinkFailure(fmt.Sprintf("insert %s question %d", c, i+1), err)
			}
			s.saved++
		}
	}

	s.logger.Info().Int("saved", s.saved).Str("mode", string(s.mode)).Msg("Questions saved")
	return nil
}

func insert(ctx context.Context, repo *storage.QuestionRepository, q domain.Question) error {
	rec := &storage.QuestionRecord{Text: q.Text, Type: q.Category.StoreType()}
	if err := repo.Insert(ctx, rec); err != nil {
		return err
	}
	if q.Category == domain.ImageBased {
		if _, err := repo.LinkImage(ctx, rec.ID); err != nil {
			return err
		}
	}
	return nil
}
