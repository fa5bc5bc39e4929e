package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// QuestionRepository handles the questions and image_questions tables.
type QuestionRepository struct {
	db Execer
}

// NewQuestionRepository creates a repository over a connection or transaction.
func NewQuestionRepository(db Execer) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Insert stores a question and sets its ID.
func (r *QuestionRepository) Insert(ctx context.Context, q *QuestionRecord) error {
	query := `
		INSERT INTO questions (question_text, question_type)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, q.Text, q.Type).Scan(&q.ID); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// LinkImage creates the image_questions row for an IMAGE question.
func (r *QuestionRepository) LinkImage(ctx context.Context, questionID int64) (*ImageQuestionRecord, error) {
	rec := &ImageQuestionRecord{QuestionID: questionID}
	query := `
		INSERT INTO image_questions (question_id)
		VALUES ($1)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, questionID).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("insert image question: %w", err)
	}
	return rec, nil
}

// ListByType lists questions of one type in insertion order.
func (r *QuestionRepository) ListByType(ctx context.Context, questionType string) ([]*QuestionRecord, error) {
	query := `
		SELECT id, question_text, question_type
		FROM questions
		WHERE question_type = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, questionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*QuestionRecord
	for rows.Next() {
		q := &QuestionRecord{}
		if err := rows.Scan(&q.ID, &q.Text, &q.Type); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountByType returns the number of stored questions per type.
func (r *QuestionRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question_type, COUNT(*) FROM questions GROUP BY question_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			questionType string
			n            int
		)
		if err := rows.Scan(&questionType, &n); err != nil {
			return nil, err
		}
		counts[questionType] = n
	}
	return counts, rows.Err()
}

// ImageLinks returns the question IDs linked in image_questions, ascending.
func (r *QuestionRepository) ImageLinks(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question_id FROM image_questions ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
