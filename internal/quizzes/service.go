package quizzes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadySubmitted means the quiz was completed before.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrAnswerMismatch means the answer slice length does not match
	// the question count.
	ErrAnswerMismatch = errors.New("answers must cover every question")
)

// Service contains business logic for quizzes.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create persists a newly generated quiz with unanswered slots.
func (s *Service) Create(ctx context.Context, userId, documentID, title string, questions []Question) (Quiz, error) {
	if len(questions) == 0 {
		return Quiz{}, fmt.Errorf("questions required")
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = -1
	}

	quiz := Quiz{
		ID:             uuid.NewString(),
		UserID:         userId,
		DocumentID:     documentID,
		Title:          title,
		Questions:      questions,
		UserAnswers:    answers,
		TotalQuestions: len(questions),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

// List returns the user's quizzes, newest first.
func (s *Service) List(ctx context.Context, userId string) ([]Quiz, error) {
	return s.Repo.ListByUser(ctx, userId)
}

// Get returns a single quiz.
func (s *Service) Get(ctx context.Context, userId, quizID string) (Quiz, error) {
	return s.Repo.GetByID(ctx, userId, quizID)
}

// Submit grades the quiz exactly once. The score is the percentage of
// correct answers rounded to the nearest integer.
func (s *Service) Submit(ctx context.Context, userId, quizID string, answers []int) (Quiz, error) {
	quiz, err := s.Repo.GetByID(ctx, userId, quizID)
	if err != nil {
		return Quiz{}, err
	}
	if quiz.Completed {
		return Quiz{}, ErrAlreadySubmitted
	}
	if len(answers) != len(quiz.Questions) {
		return Quiz{}, ErrAnswerMismatch
	}

	correct := 0
	for i, question := range quiz.Questions {
		if answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	score := int(math.Round(float64(correct) / float64(quiz.TotalQuestions) * 100))

	completedAt := time.Now().UTC()
	if err := s.Repo.SaveSubmission(ctx, userId, quizID, answers, score, completedAt); err != nil {
		// The row existed moments ago, so a miss means a concurrent
		// submission won the completed guard.
		if errors.Is(err, ErrNotFound) {
			return Quiz{}, ErrAlreadySubmitted
		}
		return Quiz{}, err
	}

	quiz.UserAnswers = answers
	quiz.Score = &score
	quiz.Completed = true
	quiz.CompletedAt = &completedAt
	return quiz, nil
}

// Delete removes a quiz.
func (s *Service) Delete(ctx context.Context, userId, quizID string) error {
	return s.Repo.Delete(ctx, userId, quizID)
}
