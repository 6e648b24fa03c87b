package documents

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "document not found" }

var ErrInvalidInput = errInvalidInput{}

type errInvalidInput struct{}

func (errInvalidInput) Error() string { return "invalid input" }

// Repo defines persistence operations for documents. All lookups are
// scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	ListByUser(ctx context.Context, userId string) ([]Overview, error)
	UpdateSummary(ctx context.Context, userId, documentID, summary string) error
	Delete(ctx context.Context, userId, documentID string) error
}
