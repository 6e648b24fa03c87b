package quizzes

import "time"

// questionView hides the correct answer and explanation until the quiz
// has been submitted.
type questionView struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

type quizView struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	DocumentID     string         `json:"documentId"`
	DocumentTitle  string         `json:"documentTitle,omitempty"`
	Title          string         `json:"title"`
	Questions      []questionView `json:"questions"`
	UserAnswers    []int          `json:"userAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	Score          *int           `json:"score"`
	Completed      bool           `json:"completed"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// toView renders a quiz, revealing answers only when it is completed.
func toView(quiz Quiz, revealAnswers bool) quizView {
	questions := make([]questionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		view := questionView{
			Question: q.Question,
			Options:  q.Options,
		}
		if revealAnswers {
			answer := q.CorrectAnswer
			view.CorrectAnswer = &answer
			view.Explanation = q.Explanation
		}
		questions = append(questions, view)
	}
	return quizView{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		DocumentID:     quiz.DocumentID,
		DocumentTitle:  quiz.DocumentTitle,
		Title:          quiz.Title,
		Questions:      questions,
		UserAnswers:    quiz.UserAnswers,
		TotalQuestions: quiz.TotalQuestions,
		Score:          quiz.Score,
		Completed:      quiz.Completed,
		CompletedAt:    quiz.CompletedAt,
		CreatedAt:      quiz.CreatedAt,
	}
}
