package flashcards

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for flashcard sets.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create persists a newly generated set and returns it with progress.
func (s *Service) Create(ctx context.Context, userId, documentID, title string, cards []Card) (Set, error) {
	if len(cards) == 0 {
		return Set{}, fmt.Errorf("cards required")
	}
	set := Set{
		ID:         uuid.NewString(),
		UserID:     userId,
		DocumentID: documentID,
		Title:      title,
		Cards:      cards,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	set.RecalcProgress()
	if err := s.Repo.Create(ctx, set); err != nil {
		return Set{}, err
	}
	return set, nil
}

// List returns the user's sets, newest first.
func (s *Service) List(ctx context.Context, userId string) ([]Set, error) {
	return s.Repo.ListByUser(ctx, userId)
}

// Get returns a single set.
func (s *Service) Get(ctx context.Context, userId, setID string) (Set, error) {
	return s.Repo.GetByID(ctx, userId, setID)
}

// UpdateProgress flips the mastered flag on one card and recomputes
// progress. An out-of-range index leaves the cards untouched but still
// returns the set with fresh progress, matching lenient client behavior.
func (s *Service) UpdateProgress(ctx context.Context, userId, setID string, cardIndex int, mastered bool) (Set, error) {
	set, err := s.Repo.GetByID(ctx, userId, setID)
	if err != nil {
		return Set{}, err
	}

	if cardIndex >= 0 && cardIndex < len(set.Cards) {
		set.Cards[cardIndex].Mastered = mastered
		if err := s.Repo.UpdateCards(ctx, userId, setID, set.Cards); err != nil {
			return Set{}, err
		}
	}

	set.RecalcProgress()
	set.UpdatedAt = time.Now().UTC()
	return set, nil
}

// Delete removes a set.
func (s *Service) Delete(ctx context.Context, userId, setID string) error {
	return s.Repo.Delete(ctx, userId, setID)
}
