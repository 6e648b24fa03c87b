package studygen

import (
	"context"
	"errors"
	"time"

	"documind-backend/internal/flashcards"
	"documind-backend/internal/llm"
	"documind-backend/internal/quizzes"
	"documind-backend/internal/shared/metrics"
)

const (
	defaultFlashcardCount = 10
	defaultQuizCount      = 5
)

// ErrNoText means the document has no extracted text to work from.
var ErrNoText = errors.New("document has no extracted text")

// Service generates study material from document text via an LLM.
type Service struct {
	Completer llm.Completer
}

func NewService(completer llm.Completer) *Service {
	return &Service{Completer: completer}
}

// Summarize produces a plain-text academic summary of the document text.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, summaryPrompt(text))
}

// ExplainConcept answers a question grounded in the document text.
func (s *Service) ExplainConcept(ctx context.Context, text, question string) (string, error) {
	return s.complete(ctx, explainPrompt(text, question))
}

// GenerateFlashcards produces question/answer cards from the document text.
func (s *Service) GenerateFlashcards(ctx context.Context, text string, count int) ([]flashcards.Card, error) {
	if count <= 0 {
		count = defaultFlashcardCount
	}
	raw, err := s.complete(ctx, flashcardsPrompt(text, count))
	if err != nil {
		return nil, err
	}
	cards, err := parseFlashcards(raw)
	if err != nil {
		metrics.IncGenerationFailed()
		return nil, err
	}
	return cards, nil
}

// GenerateQuiz produces multiple-choice questions from the document text.
func (s *Service) GenerateQuiz(ctx context.Context, text string, count int) ([]quizzes.Question, error) {
	if count <= 0 {
		count = defaultQuizCount
	}
	raw, err := s.complete(ctx, quizPrompt(text, count))
	if err != nil {
		return nil, err
	}
	questions, err := parseQuizQuestions(raw)
	if err != nil {
		metrics.IncGenerationFailed()
		return nil, err
	}
	return questions, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	metrics.IncGenerationStarted()
	started := time.Now()
	raw, err := s.Completer.Complete(ctx, prompt)
	metrics.ObserveGenerationDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncGenerationFailed()
		return "", err
	}
	metrics.IncGenerationCompleted()
	return raw, nil
}
