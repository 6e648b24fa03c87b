package studygen

import (
	"errors"
	"testing"
)

func TestParseFlashcardsPlainArray(t *testing.T) {
	raw := `[{"question":"What is Go?","answer":"A language"},{"question":"Q2","answer":"A2"}]`
	cards, err := parseFlashcards(raw)
	if err != nil {
		t.Fatalf("parseFlashcards: %v", err)
	}
	if len(cards) != 2 || cards[0].Question != "What is Go?" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestParseFlashcardsWrappedInProse(t *testing.T) {
	raw := "Here are your flashcards:\n```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```\nEnjoy!"
	cards, err := parseFlashcards(raw)
	if err != nil {
		t.Fatalf("parseFlashcards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len = %d", len(cards))
	}
}

func TestParseFlashcardsRejectsGarbage(t *testing.T) {
	if _, err := parseFlashcards("I cannot generate flashcards for this."); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseFlashcardsRejectsEmptyFields(t *testing.T) {
	raw := `[{"question":"","answer":"A"}]`
	if _, err := parseFlashcards(raw); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseFlashcardsRejectsEmptyArray(t *testing.T) {
	if _, err := parseFlashcards("[]"); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseQuizQuestions(t *testing.T) {
	raw := `[{"question":"Q","options":["a","b","c","d"],"correctAnswer":2,"explanation":"because"}]`
	questions, err := parseQuizQuestions(raw)
	if err != nil {
		t.Fatalf("parseQuizQuestions: %v", err)
	}
	if questions[0].CorrectAnswer != 2 || len(questions[0].Options) != 4 {
		t.Fatalf("unexpected question: %+v", questions[0])
	}
}

func TestParseQuizRejectsWrongOptionCount(t *testing.T) {
	raw := `[{"question":"Q","options":["a","b"],"correctAnswer":0,"explanation":"x"}]`
	if _, err := parseQuizQuestions(raw); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseQuizRejectsOutOfRangeAnswer(t *testing.T) {
	raw := `[{"question":"Q","options":["a","b","c","d"],"correctAnswer":4,"explanation":"x"}]`
	if _, err := parseQuizQuestions(raw); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseFlashcardsBracketInsideString(t *testing.T) {
	raw := `[{"question":"Q with ] bracket","answer":"A"}]`
	cards, err := parseFlashcards(raw)
	if err != nil {
		t.Fatalf("parseFlashcards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len = %d", len(cards))
	}
}
