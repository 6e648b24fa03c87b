package flashcards

import (
	"context"
	"errors"
	"testing"
)

func seedSet(t *testing.T, svc *Service, userId string, cards []Card) Set {
	t.Helper()
	set, err := svc.Create(context.Background(), userId, "doc-1", "Flashcards - Notes", cards)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return set
}

func TestCreateComputesProgress(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	set := seedSet(t, svc, "user-1", []Card{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2", Mastered: true},
	})

	if set.Progress.Total != 2 || set.Progress.Studied != 1 {
		t.Fatalf("progress = %+v", set.Progress)
	}
}

func TestCreateRejectsEmptyCards(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Create(context.Background(), "user-1", "doc-1", "t", nil); err == nil {
		t.Fatal("expected error for empty cards")
	}
}

func TestUpdateProgressMastersCard(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	set := seedSet(t, svc, "user-1", []Card{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
	})

	updated, err := svc.UpdateProgress(context.Background(), "user-1", set.ID, 1, true)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if !updated.Cards[1].Mastered {
		t.Fatal("card 1 should be mastered")
	}
	if updated.Progress.Studied != 1 || updated.Progress.Total != 3 {
		t.Fatalf("progress = %+v", updated.Progress)
	}

	// Unmastering brings studied back down.
	updated, err = svc.UpdateProgress(context.Background(), "user-1", set.ID, 1, false)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if updated.Progress.Studied != 0 {
		t.Fatalf("studied = %d after unmaster", updated.Progress.Studied)
	}
}

func TestUpdateProgressOutOfRangeIndex(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	set := seedSet(t, svc, "user-1", []Card{{Question: "Q", Answer: "A"}})

	updated, err := svc.UpdateProgress(context.Background(), "user-1", set.ID, 5, true)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if updated.Cards[0].Mastered {
		t.Fatal("out-of-range index must not change cards")
	}
	if updated.Progress.Studied != 0 || updated.Progress.Total != 1 {
		t.Fatalf("progress = %+v", updated.Progress)
	}
}

func TestUpdateProgressWrongUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	set := seedSet(t, svc, "user-1", []Card{{Question: "Q", Answer: "A"}})

	if _, err := svc.UpdateProgress(context.Background(), "user-2", set.ID, 0, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	set := seedSet(t, svc, "user-1", []Card{{Question: "Q", Answer: "A"}})

	if err := svc.Delete(context.Background(), "user-1", set.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", set.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", set.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should 404, got %v", err)
	}
}
