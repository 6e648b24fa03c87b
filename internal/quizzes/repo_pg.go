package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. Questions and answers are
// stored as JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, quiz Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(quiz.UserAnswers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
INSERT INTO quizzes (id, user_id, document_id, title, questions, user_answers, total_questions, score, completed, completed_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, FALSE, NULL, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		quiz.ID,
		quiz.UserID,
		quiz.DocumentID,
		quiz.Title,
		questions,
		answers,
		quiz.TotalQuestions,
		quiz.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Quiz, error) {
	const query = `
SELECT q.id, q.user_id, q.document_id, COALESCE(d.title, ''), q.title, q.questions, q.user_answers, q.total_questions, q.score, q.completed, q.completed_at, q.created_at
FROM quizzes q
LEFT JOIN documents d ON d.id = q.document_id
WHERE q.user_id = $1
ORDER BY q.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userId, quizID string) (Quiz, error) {
	const query = `
SELECT q.id, q.user_id, q.document_id, COALESCE(d.title, ''), q.title, q.questions, q.user_answers, q.total_questions, q.score, q.completed, q.completed_at, q.created_at
FROM quizzes q
LEFT JOIN documents d ON d.id = q.document_id
WHERE q.user_id = $1 AND q.id = $2
LIMIT 1`

	quiz, err := scanQuiz(r.DB.QueryRowContext(ctx, query, userId, quizID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	return quiz, nil
}

// SaveSubmission records answers and score. The completed guard in the
// WHERE clause makes submission one-shot even under concurrent requests.
func (r *PGRepo) SaveSubmission(ctx context.Context, userId, quizID string, answers []int, score int, completedAt time.Time) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
UPDATE quizzes
SET user_answers = $1, score = $2, completed = TRUE, completed_at = $3
WHERE user_id = $4 AND id = $5 AND completed = FALSE`
	res, err := r.DB.ExecContext(ctx, query, payload, score, completedAt, userId, quizID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userId, quizID string) error {
	const query = `
DELETE FROM quizzes
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, quizID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountByDocument(ctx context.Context, userId, documentID string) (int, error) {
	const query = `
SELECT count(*) FROM quizzes
WHERE user_id = $1 AND document_id = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(&count)
	return count, err
}

func scanQuiz(scan func(dest ...any) error) (Quiz, error) {
	var quiz Quiz
	var questions []byte
	var answers []byte
	var score sql.NullInt64
	var completedAt sql.NullTime
	if err := scan(
		&quiz.ID,
		&quiz.UserID,
		&quiz.DocumentID,
		&quiz.DocumentTitle,
		&quiz.Title,
		&questions,
		&answers,
		&quiz.TotalQuestions,
		&score,
		&quiz.Completed,
		&completedAt,
		&quiz.CreatedAt,
	); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answers, &quiz.UserAnswers); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	if score.Valid {
		v := int(score.Int64)
		quiz.Score = &v
	}
	if completedAt.Valid {
		t := completedAt.Time
		quiz.CompletedAt = &t
	}
	return quiz, nil
}

var _ Repo = (*PGRepo)(nil)
