package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"documind-backend/internal/documents"
	"documind-backend/internal/flashcards"
	"documind-backend/internal/quizzes"
)

const (
	recentPerSource = 5
	activityLimit   = 10
)

// DocumentLister exposes the document listing the dashboard aggregates.
type DocumentLister interface {
	List(ctx context.Context, userId string) ([]documents.Overview, error)
}

// SetLister exposes the flashcard set listing.
type SetLister interface {
	List(ctx context.Context, userId string) ([]flashcards.Set, error)
}

// QuizLister exposes the quiz listing.
type QuizLister interface {
	List(ctx context.Context, userId string) ([]quizzes.Quiz, error)
}

// Summary is the dashboard's headline card.
type Summary struct {
	TotalDocuments  int         `json:"totalDocuments"`
	TotalFlashcards int         `json:"totalFlashcards"`
	TotalQuizzes    int         `json:"totalQuizzes"`
	AverageScore    int         `json:"averageScore"`
	RecentQuizzes   []QuizScore `json:"recentQuizScores"`
}

// QuizScore is one recent completed quiz result.
type QuizScore struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	DocumentTitle string     `json:"documentTitle,omitempty"`
	Score         int        `json:"score"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Activity is one row in the recent activity feed.
type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Service aggregates per-user study statistics from the domain listings.
type Service struct {
	Documents  DocumentLister
	Flashcards SetLister
	Quizzes    QuizLister
}

func NewService(docs DocumentLister, sets SetLister, qz QuizLister) *Service {
	return &Service{Documents: docs, Flashcards: sets, Quizzes: qz}
}

// Summary returns totals plus the average over the five most recently
// completed quizzes.
func (s *Service) Summary(ctx context.Context, userId string) (Summary, error) {
	docs, err := s.Documents.List(ctx, userId)
	if err != nil {
		return Summary{}, err
	}
	sets, err := s.Flashcards.List(ctx, userId)
	if err != nil {
		return Summary{}, err
	}
	allQuizzes, err := s.Quizzes.List(ctx, userId)
	if err != nil {
		return Summary{}, err
	}

	completed := make([]quizzes.Quiz, 0, len(allQuizzes))
	for _, quiz := range allQuizzes {
		if quiz.Completed && quiz.Score != nil {
			completed = append(completed, quiz)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completedTime(completed[i]).After(completedTime(completed[j]))
	})
	if len(completed) > recentPerSource {
		completed = completed[:recentPerSource]
	}

	recent := make([]QuizScore, 0, len(completed))
	total := 0
	for _, quiz := range completed {
		total += *quiz.Score
		recent = append(recent, QuizScore{
			ID:            quiz.ID,
			Title:         quiz.Title,
			DocumentTitle: quiz.DocumentTitle,
			Score:         *quiz.Score,
			CompletedAt:   quiz.CompletedAt,
		})
	}
	avg := 0
	if len(completed) > 0 {
		avg = int(math.Round(float64(total) / float64(len(completed))))
	}

	return Summary{
		TotalDocuments:  len(docs),
		TotalFlashcards: len(sets),
		TotalQuizzes:    len(allQuizzes),
		AverageScore:    avg,
		RecentQuizzes:   recent,
	}, nil
}

// Activity merges the five most recent items from each source and
// returns the ten newest overall.
func (s *Service) Activity(ctx context.Context, userId string) ([]Activity, error) {
	docs, err := s.Documents.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	sets, err := s.Flashcards.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	allQuizzes, err := s.Quizzes.List(ctx, userId)
	if err != nil {
		return nil, err
	}

	activities := []Activity{}
	for i, doc := range docs {
		if i >= recentPerSource {
			break
		}
		activities = append(activities, Activity{
			Type:        "document",
			Title:       doc.Title,
			Description: "Uploaded a new document",
			Date:        doc.CreatedAt,
		})
	}
	for i, set := range sets {
		if i >= recentPerSource {
			break
		}
		activities = append(activities, Activity{
			Type:        "flashcard",
			Title:       set.Title,
			Description: fmt.Sprintf("%d/%d cards mastered", set.Progress.Studied, set.Progress.Total),
			Date:        set.CreatedAt,
		})
	}
	for i, quiz := range allQuizzes {
		if i >= recentPerSource {
			break
		}
		description := "In progress"
		if quiz.Completed && quiz.Score != nil {
			description = fmt.Sprintf("Score: %d%%", *quiz.Score)
		}
		activities = append(activities, Activity{
			Type:        "quiz",
			Title:       quiz.Title,
			Description: description,
			Date:        completedTime(quiz),
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > activityLimit {
		activities = activities[:activityLimit]
	}
	return activities, nil
}

func completedTime(quiz quizzes.Quiz) time.Time {
	if quiz.CompletedAt != nil {
		return *quiz.CompletedAt
	}
	return quiz.CreatedAt
}
