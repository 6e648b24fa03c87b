package quizzes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Quiz // userId -> quizzes
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Quiz)}
}

func (r *MemoryRepo) Create(ctx context.Context, quiz Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[quiz.UserID] = append(r.data[quiz.UserID], quiz)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	quizzes := make([]Quiz, len(r.data[userId]))
	copy(quizzes, r.data[userId])
	r.mu.RUnlock()

	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].CreatedAt.After(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userId, quizID string) (Quiz, error) {
	if err := ctx.Err(); err != nil {
		return Quiz{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, quiz := range r.data[userId] {
		if quiz.ID == quizID {
			return quiz, nil
		}
	}
	return Quiz{}, ErrNotFound
}

// SaveSubmission refuses to overwrite a completed quiz, mirroring the
// completed guard in the Postgres implementation.
func (r *MemoryRepo) SaveSubmission(ctx context.Context, userId, quizID string, answers []int, score int, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	quizzes := r.data[userId]
	for i := range quizzes {
		if quizzes[i].ID == quizID {
			if quizzes[i].Completed {
				return ErrNotFound
			}
			quizzes[i].UserAnswers = answers
			quizzes[i].Score = &score
			quizzes[i].Completed = true
			quizzes[i].CompletedAt = &completedAt
			r.data[userId] = quizzes
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userId, quizID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	quizzes := r.data[userId]
	for i := range quizzes {
		if quizzes[i].ID == quizID {
			r.data[userId] = append(quizzes[:i], quizzes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) CountByDocument(ctx context.Context, userId, documentID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, quiz := range r.data[userId] {
		if quiz.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

var _ Repo = (*MemoryRepo)(nil)
