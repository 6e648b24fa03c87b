package quizzes

import "time"

// Question is a single multiple-choice question with exactly four options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated quiz with one-shot submission. UserAnswers holds
// -1 per question until the quiz is submitted.
type Quiz struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	DocumentID     string     `json:"documentId"`
	DocumentTitle  string     `json:"documentTitle,omitempty"`
	Title          string     `json:"title"`
	Questions      []Question `json:"questions"`
	UserAnswers    []int      `json:"userAnswers"`
	TotalQuestions int        `json:"totalQuestions"`
	Score          *int       `json:"score"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
