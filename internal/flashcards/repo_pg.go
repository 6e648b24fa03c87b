package flashcards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Cards are stored as a JSONB
// column; progress is recomputed on load.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, set Set) error {
	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}

	const query = `
INSERT INTO flashcard_sets (id, user_id, document_id, title, cards, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err = r.DB.ExecContext(ctx, query,
		set.ID,
		set.UserID,
		set.DocumentID,
		set.Title,
		cards,
		set.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Set, error) {
	const query = `
SELECT f.id, f.user_id, f.document_id, COALESCE(d.title, ''), f.title, f.cards, f.created_at, f.updated_at
FROM flashcard_sets f
LEFT JOIN documents d ON d.id = f.document_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Set{}
	for rows.Next() {
		set, err := scanSet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userId, setID string) (Set, error) {
	const query = `
SELECT f.id, f.user_id, f.document_id, COALESCE(d.title, ''), f.title, f.cards, f.created_at, f.updated_at
FROM flashcard_sets f
LEFT JOIN documents d ON d.id = f.document_id
WHERE f.user_id = $1 AND f.id = $2
LIMIT 1`

	set, err := scanSet(r.DB.QueryRowContext(ctx, query, userId, setID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Set{}, ErrNotFound
		}
		return Set{}, err
	}
	return set, nil
}

func (r *PGRepo) UpdateCards(ctx context.Context, userId, setID string, cards []Card) error {
	payload, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}

	const query = `
UPDATE flashcard_sets
SET cards = $1, updated_at = now()
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, payload, userId, setID)
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

func (r *PGRepo) Delete(ctx context.Context, userId, setID string) error {
	const query = `
DELETE FROM flashcard_sets
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, setID)
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

func (r *PGRepo) CountByDocument(ctx context.Context, userId, documentID string) (int, error) {
	const query = `
SELECT count(*) FROM flashcard_sets
WHERE user_id = $1 AND document_id = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(&count)
	return count, err
}

func scanSet(scan func(dest ...any) error) (Set, error) {
	var set Set
	var cards []byte
	if err := scan(
		&set.ID,
		&set.UserID,
		&set.DocumentID,
		&set.DocumentTitle,
		&set.Title,
		&cards,
		&set.CreatedAt,
		&set.UpdatedAt,
	); err != nil {
		return Set{}, err
	}
	if err := json.Unmarshal(cards, &set.Cards); err != nil {
		return Set{}, fmt.Errorf("unmarshal cards: %w", err)
	}
	set.RecalcProgress()
	return set, nil
}

var _ Repo = (*PGRepo)(nil)
