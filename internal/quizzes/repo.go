package quizzes

import (
	"context"
	"time"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "quiz not found" }

// Repo defines persistence operations for quizzes.
type Repo interface {
	Create(ctx context.Context, quiz Quiz) error
	ListByUser(ctx context.Context, userId string) ([]Quiz, error)
	GetByID(ctx context.Context, userId, quizID string) (Quiz, error)
	SaveSubmission(ctx context.Context, userId, quizID string, answers []int, score int, completedAt time.Time) error
	Delete(ctx context.Context, userId, quizID string) error
	CountByDocument(ctx context.Context, userId, documentID string) (int, error)
}
