package chats

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Chat // userId + "\x00" + documentID -> chat
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Chat)}
}

func chatKey(userId, documentID string) string {
	return userId + "\x00" + documentID
}

func (r *MemoryRepo) Get(ctx context.Context, userId, documentID string) (Chat, error) {
	if err := ctx.Err(); err != nil {
		return Chat{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	chat, ok := r.data[chatKey(userId, documentID)]
	if !ok {
		return Chat{}, ErrNotFound
	}
	return chat, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, chat Chat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := chatKey(chat.UserID, chat.DocumentID)
	if existing, ok := r.data[key]; ok {
		chat.ID = existing.ID
		chat.CreatedAt = existing.CreatedAt
	}
	chat.UpdatedAt = time.Now().UTC()
	r.data[key] = chat
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userId, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, chatKey(userId, documentID))
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
