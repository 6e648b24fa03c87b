package documents

import (
	"context"
	"sort"
	"sync"
)

// CountFunc reports how many study artifacts exist for a document.
type CountFunc func(ctx context.Context, userId, documentID string) (int, error)

// MemoryRepo is an in-memory implementation of Repo. Study material
// counts come from injected counters so the package stays decoupled
// from flashcards and quizzes.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // userId -> documents

	FlashcardCounter CountFunc
	QuizCounter      CountFunc
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	userDocs := make([]Document, len(r.data[userId]))
	copy(userDocs, r.data[userId])
	r.mu.RUnlock()

	sort.Slice(userDocs, func(i, j int) bool {
		return userDocs[i].CreatedAt.After(userDocs[j].CreatedAt)
	})

	out := make([]Overview, 0, len(userDocs))
	for _, doc := range userDocs {
		doc.ExtractedText = ""
		item := Overview{Document: doc}
		if r.FlashcardCounter != nil {
			count, err := r.FlashcardCounter(ctx, userId, doc.ID)
			if err != nil {
				return nil, err
			}
			item.FlashcardCount = count
		}
		if r.QuizCounter != nil {
			count, err := r.QuizCounter(ctx, userId, doc.ID)
			if err != nil {
				return nil, err
			}
			item.QuizCount = count
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MemoryRepo) UpdateSummary(ctx context.Context, userId, documentID, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			docs[i].Summary = summary
			r.data[userId] = docs
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userId, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			r.data[userId] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
