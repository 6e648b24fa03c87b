package flashcards

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "flashcard set not found" }

// Repo defines persistence operations for flashcard sets.
type Repo interface {
	Create(ctx context.Context, set Set) error
	ListByUser(ctx context.Context, userId string) ([]Set, error)
	GetByID(ctx context.Context, userId, setID string) (Set, error)
	UpdateCards(ctx context.Context, userId, setID string, cards []Card) error
	Delete(ctx context.Context, userId, setID string) error
	CountByDocument(ctx context.Context, userId, documentID string) (int, error)
}
