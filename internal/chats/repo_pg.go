package chats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Messages are a JSONB column;
// the UNIQUE (user_id, document_id) constraint backs the upsert.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userId, documentID string) (Chat, error) {
	const query = `
SELECT id, user_id, document_id, messages, created_at, updated_at
FROM chats
WHERE user_id = $1 AND document_id = $2
LIMIT 1`

	var chat Chat
	var messages []byte
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.DocumentID,
		&messages,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Chat{}, ErrNotFound
		}
		return Chat{}, err
	}
	if err := json.Unmarshal(messages, &chat.Messages); err != nil {
		return Chat{}, fmt.Errorf("unmarshal messages: %w", err)
	}
	return chat, nil
}

func (r *PGRepo) Upsert(ctx context.Context, chat Chat) error {
	messages, err := json.Marshal(chat.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	const query = `
INSERT INTO chats (id, user_id, document_id, messages, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (user_id, document_id) DO UPDATE SET
  messages = EXCLUDED.messages,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query, chat.ID, chat.UserID, chat.DocumentID, messages)
	return err
}

// Delete removes the whole conversation. Deleting a missing chat is not
// an error.
func (r *PGRepo) Delete(ctx context.Context, userId, documentID string) error {
	const query = `
DELETE FROM chats
WHERE user_id = $1 AND document_id = $2`
	_, err := r.DB.ExecContext(ctx, query, userId, documentID)
	return err
}

var _ Repo = (*PGRepo)(nil)
