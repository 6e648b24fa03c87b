package quizzes

import (
	"context"
	"errors"
	"testing"
)

func threeQuestions() []Question {
	return []Question{
		{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Explanation: "e1"},
		{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Explanation: "e2"},
		{Question: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Explanation: "e3"},
	}
}

func seedQuiz(t *testing.T, svc *Service, userId string) Quiz {
	t.Helper()
	quiz, err := svc.Create(context.Background(), userId, "doc-1", "Quiz - Notes", threeQuestions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return quiz
}

func TestCreateInitializesUnanswered(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	if quiz.TotalQuestions != 3 {
		t.Fatalf("total = %d", quiz.TotalQuestions)
	}
	if len(quiz.UserAnswers) != 3 {
		t.Fatalf("answers len = %d", len(quiz.UserAnswers))
	}
	for i, a := range quiz.UserAnswers {
		if a != -1 {
			t.Fatalf("answer %d = %d, want -1", i, a)
		}
	}
	if quiz.Completed || quiz.Score != nil {
		t.Fatal("new quiz must be incomplete with no score")
	}
}

func TestSubmitScoresRounded(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	// Two of three correct: 66.67 rounds to 67.
	got, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{1, 1, 2})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Score == nil || *got.Score != 67 {
		t.Fatalf("score = %v, want 67", got.Score)
	}
	if !got.Completed || got.CompletedAt == nil {
		t.Fatal("quiz should be completed")
	}
}

func TestSubmitPerfectAndZero(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	quiz := seedQuiz(t, svc, "user-1")
	got, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{1, 0, 2})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if *got.Score != 100 {
		t.Fatalf("score = %d, want 100", *got.Score)
	}

	quiz = seedQuiz(t, svc, "user-1")
	got, err = svc.Submit(context.Background(), "user-1", quiz.ID, []int{3, 3, 3})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if *got.Score != 0 {
		t.Fatalf("score = %d, want 0", *got.Score)
	}
}

func TestSubmitTwiceConflicts(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	if _, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{1, 0, 2}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{0, 0, 0})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	// First submission's answers survive.
	stored, err := svc.Get(context.Background(), "user-1", quiz.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.UserAnswers[0] != 1 {
		t.Fatalf("answers overwritten: %v", stored.UserAnswers)
	}
}

func TestSubmitAnswerLengthMismatch(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	_, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{1})
	if !errors.Is(err, ErrAnswerMismatch) {
		t.Fatalf("expected ErrAnswerMismatch, got %v", err)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Submit(context.Background(), "user-1", "missing", []int{0})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestViewHidesAnswersUntilCompleted(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	view := toView(quiz, false)
	for _, q := range view.Questions {
		if q.CorrectAnswer != nil || q.Explanation != "" {
			t.Fatalf("answers leaked in incomplete view: %+v", q)
		}
	}

	completed, err := svc.Submit(context.Background(), "user-1", quiz.ID, []int{1, 0, 2})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	view = toView(completed, true)
	if view.Questions[0].CorrectAnswer == nil || *view.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("completed view missing answer: %+v", view.Questions[0])
	}
	if view.Questions[0].Explanation != "e1" {
		t.Fatalf("completed view missing explanation: %+v", view.Questions[0])
	}
}

func TestDeleteQuiz(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	quiz := seedQuiz(t, svc, "user-1")

	if err := svc.Delete(context.Background(), "user-1", quiz.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", quiz.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should 404, got %v", err)
	}
}
