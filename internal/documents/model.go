package documents

import "time"

// Document represents an uploaded PDF owned by a user. ExtractedText is
// kept inline so AI generation never has to re-parse the file.
type Document struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	OriginalName  string    `json:"originalName"`
	StorageKey    string    `json:"-"`
	ExtractedText string    `json:"extractedText"`
	Summary       string    `json:"summary"`
	PageCount     int       `json:"pageCount"`
	FileSize      int64     `json:"fileSize"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HasText reports whether extraction produced any readable text.
func (d Document) HasText() bool {
	return len(d.ExtractedText) > 0
}

// Overview is a list entry enriched with study material counts.
type Overview struct {
	Document
	FlashcardCount int `json:"flashcardCount"`
	QuizCount      int `json:"quizCount"`
}
