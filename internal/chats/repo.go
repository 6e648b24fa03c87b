package chats

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "chat not found" }

// Repo defines persistence operations for chats.
type Repo interface {
	Get(ctx context.Context, userId, documentID string) (Chat, error)
	Upsert(ctx context.Context, chat Chat) error
	Delete(ctx context.Context, userId, documentID string) error
}
