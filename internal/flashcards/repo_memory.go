package flashcards

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Set // userId -> sets
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Set)}
}

func (r *MemoryRepo) Create(ctx context.Context, set Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set.RecalcProgress()
	r.data[set.UserID] = append(r.data[set.UserID], set)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	sets := make([]Set, len(r.data[userId]))
	copy(sets, r.data[userId])
	r.mu.RUnlock()

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].CreatedAt.After(sets[j].CreatedAt)
	})
	return sets, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userId, setID string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, set := range r.data[userId] {
		if set.ID == setID {
			return set, nil
		}
	}
	return Set{}, ErrNotFound
}

func (r *MemoryRepo) UpdateCards(ctx context.Context, userId, setID string, cards []Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sets := r.data[userId]
	for i := range sets {
		if sets[i].ID == setID {
			sets[i].Cards = cards
			sets[i].RecalcProgress()
			sets[i].UpdatedAt = time.Now().UTC()
			r.data[userId] = sets
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userId, setID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sets := r.data[userId]
	for i := range sets {
		if sets[i].ID == setID {
			r.data[userId] = append(sets[:i], sets[i+1:]...)
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
	for _, set := range r.data[userId] {
		if set.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

var _ Repo = (*MemoryRepo)(nil)
