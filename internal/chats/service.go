package chats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"documind-backend/internal/documents"
	"documind-backend/internal/studygen"
)

// Explainer answers a question grounded in document text.
type Explainer interface {
	ExplainConcept(ctx context.Context, text, question string) (string, error)
}

// ErrEmptyMessage means the user sent a blank message.
var ErrEmptyMessage = errors.New("message is required")

// Service contains business logic for document chats.
type Service struct {
	Repo      Repo
	Documents *documents.Service
	Explainer Explainer
}

func NewService(repo Repo, docs *documents.Service, explainer Explainer) *Service {
	return &Service{Repo: repo, Documents: docs, Explainer: explainer}
}

// Get returns the chat for a document. A chat that does not exist yet
// is rendered as empty rather than a 404.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Chat, error) {
	chat, err := s.Repo.Get(ctx, userId, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Chat{
				UserID:     userId,
				DocumentID: documentID,
				Messages:   []Message{},
			}, nil
		}
		return Chat{}, err
	}
	return chat, nil
}

// Send appends the user's message, asks the model, appends the reply,
// and persists the conversation. The chat row is created lazily.
func (s *Service) Send(ctx context.Context, userId, documentID, message string) (Chat, string, error) {
	if message == "" {
		return Chat{}, "", ErrEmptyMessage
	}

	doc, err := s.Documents.Get(ctx, userId, documentID)
	if err != nil {
		return Chat{}, "", err
	}
	if !doc.HasText() {
		return Chat{}, "", studygen.ErrNoText
	}

	chat, err := s.Repo.Get(ctx, userId, documentID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Chat{}, "", err
		}
		chat = Chat{
			ID:         uuid.NewString(),
			UserID:     userId,
			DocumentID: documentID,
			Messages:   []Message{},
			CreatedAt:  time.Now().UTC(),
		}
	}

	now := time.Now().UTC()
	chat.Messages = append(chat.Messages, Message{Role: "user", Content: message, Timestamp: now})

	reply, err := s.Explainer.ExplainConcept(ctx, doc.ExtractedText, message)
	if err != nil {
		return Chat{}, "", fmt.Errorf("chat completion: %w", err)
	}

	chat.Messages = append(chat.Messages, Message{Role: "assistant", Content: reply, Timestamp: time.Now().UTC()})
	chat.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Upsert(ctx, chat); err != nil {
		return Chat{}, "", err
	}
	return chat, reply, nil
}

// Clear deletes the whole conversation for a document.
func (s *Service) Clear(ctx context.Context, userId, documentID string) error {
	return s.Repo.Delete(ctx, userId, documentID)
}
