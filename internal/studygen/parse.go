package studygen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"documind-backend/internal/flashcards"
	"documind-backend/internal/quizzes"
)

// ErrParse means the model's completion could not be turned into the
// requested structure.
var ErrParse = errors.New("failed to parse AI response")

// decodeJSONArray pulls the first top-level JSON array out of a
// completion. Models often wrap the array in prose or code fences, so
// the span between the first '[' and last ']' is tried before the raw
// text.
func decodeJSONArray(raw string, target any) error {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), target); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

func parseFlashcards(raw string) ([]flashcards.Card, error) {
	var cards []flashcards.Card
	if err := decodeJSONArray(raw, &cards); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: empty flashcard array", ErrParse)
	}
	for i, card := range cards {
		if strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
			return nil, fmt.Errorf("%w: flashcard %d missing question or answer", ErrParse, i)
		}
	}
	return cards, nil
}

func parseQuizQuestions(raw string) ([]quizzes.Question, error) {
	var questions []quizzes.Question
	if err := decodeJSONArray(raw, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question array", ErrParse)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d missing text", ErrParse, i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("%w: question %d has %d options, want 4", ErrParse, i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("%w: question %d correctAnswer %d out of range", ErrParse, i, q.CorrectAnswer)
		}
	}
	return questions, nil
}
