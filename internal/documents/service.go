package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"documind-backend/internal/extract"
	"documind-backend/internal/shared/storage/object"
	"documind-backend/internal/shared/telemetry"
)

// TextExtractor pulls text and a page count from a PDF payload.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (extract.Result, error)
}

// Service contains business logic for documents.
type Service struct {
	Store     object.ObjectStore
	Repo      Repo
	Extractor TextExtractor
}

// Upload saves the PDF to object storage, extracts its text, and records
// the document. Extraction failure is tolerated; the document is still
// saved so the user can view the original file.
func (s *Service) Upload(ctx context.Context, userId, title, fileName string, data []byte) (Document, error) {
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	storageKey, size, _, err := s.Store.Save(ctx, userId, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	var extractedText string
	var pageCount int
	if res, err := s.Extractor.Extract(ctx, data); err != nil {
		telemetry.Warn("documents.extract_failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
	} else {
		extractedText = res.Text
		pageCount = res.PageCount
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(fileName, ".pdf")
	}

	doc := Document{
		ID:            uuid.NewString(),
		UserID:        userId,
		Title:         title,
		OriginalName:  fileName,
		StorageKey:    storageKey,
		ExtractedText: extractedText,
		PageCount:     pageCount,
		FileSize:      size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// List returns the user's documents with study material counts.
func (s *Service) List(ctx context.Context, userId string) ([]Overview, error) {
	return s.Repo.ListByUser(ctx, userId)
}

// Get returns a single document including its extracted text.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Document, error) {
	return s.Repo.GetByID(ctx, userId, documentID)
}

// UpdateSummary stores a generated summary on the document.
func (s *Service) UpdateSummary(ctx context.Context, userId, documentID, summary string) error {
	return s.Repo.UpdateSummary(ctx, userId, documentID, summary)
}

// Delete removes the document row and its backing file. A failure to
// remove the file is logged but does not block row deletion.
func (s *Service) Delete(ctx context.Context, userId, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		telemetry.Warn("documents.file_delete_failed", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	}

	return s.Repo.Delete(ctx, userId, documentID)
}

// File opens the stored PDF for streaming.
func (s *Service) File(ctx context.Context, userId, documentID string) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	body, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, body, nil
}
