package flashcards

import "time"

// Card is a single question/answer pair with study state.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Mastered bool   `json:"mastered"`
}

// Progress summarizes study state. It is derived from the cards and
// never stored separately.
type Progress struct {
	Studied int `json:"studied"`
	Total   int `json:"total"`
}

// Set is a deck of flashcards generated from one document.
type Set struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	DocumentID    string    `json:"documentId"`
	DocumentTitle string    `json:"documentTitle,omitempty"`
	Title         string    `json:"title"`
	Cards         []Card    `json:"cards"`
	Progress      Progress  `json:"progress"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RecalcProgress recomputes Progress from the mastered flags.
func (s *Set) RecalcProgress() {
	studied := 0
	for _, card := range s.Cards {
		if card.Mastered {
			studied++
		}
	}
	s.Progress = Progress{Studied: studied, Total: len(s.Cards)}
}
