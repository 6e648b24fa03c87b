package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    title,
    original_name,
    storage_key,
    extracted_text,
    summary,
    page_count,
    file_size,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.OriginalName,
		doc.StorageKey,
		doc.ExtractedText,
		doc.Summary,
		doc.PageCount,
		doc.FileSize,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, title, original_name, storage_key, extracted_text, summary, page_count, file_size, created_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.OriginalName,
		&doc.StorageKey,
		&doc.ExtractedText,
		&doc.Summary,
		&doc.PageCount,
		&doc.FileSize,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists documents newest-first with their study material counts.
// Extracted text is left out of list rows to keep payloads small.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Overview, error) {
	const query = `
SELECT d.id, d.user_id, d.title, d.original_name, d.storage_key, d.summary, d.page_count, d.file_size, d.created_at,
       (SELECT count(*) FROM flashcard_sets f WHERE f.document_id = d.id) AS flashcard_count,
       (SELECT count(*) FROM quizzes q WHERE q.document_id = d.id) AS quiz_count
FROM documents d
WHERE d.user_id = $1
ORDER BY d.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Overview{}
	for rows.Next() {
		var item Overview
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.OriginalName,
			&item.StorageKey,
			&item.Summary,
			&item.PageCount,
			&item.FileSize,
			&item.CreatedAt,
			&item.FlashcardCount,
			&item.QuizCount,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateSummary stores a generated summary on the document.
func (r *PGRepo) UpdateSummary(ctx context.Context, userId, documentID, summary string) error {
	const query = `
UPDATE documents
SET summary = $1
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, summary, userId, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document row.
func (r *PGRepo) Delete(ctx context.Context, userId, documentID string) error {
	const query = `
DELETE FROM documents
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
