package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	doc := Document{
		ID:            "doc-1",
		UserID:        "user-1",
		Title:         "Lecture Notes",
		OriginalName:  "notes.pdf",
		StorageKey:    "abc/notes.pdf",
		ExtractedText: "hello world",
		PageCount:     3,
		FileSize:      1024,
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.Title,
			doc.OriginalName,
			doc.StorageKey,
			doc.ExtractedText,
			doc.Summary,
			doc.PageCount,
			doc.FileSize,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, user_id, title").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserIncludesCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "original_name", "storage_key", "summary",
		"page_count", "file_size", "created_at", "flashcard_count", "quiz_count",
	}).
		AddRow("doc-2", "user-1", "Second", "b.pdf", "k2", "", 2, 200, now, 1, 3).
		AddRow("doc-1", "user-1", "First", "a.pdf", "k1", "sum", 1, 100, now.Add(-time.Hour), 0, 0)

	mock.ExpectQuery("SELECT d.id, d.user_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].FlashcardCount != 1 || out[0].QuizCount != 3 {
		t.Fatalf("counts not scanned: %+v", out[0])
	}
	if out[0].ExtractedText != "" {
		t.Fatal("list rows must not carry extracted text")
	}
}

func TestPGRepoUpdateSummaryNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs("sum", "user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSummary(context.Background(), "user-1", "missing", "sum")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("user-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "user-1", "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
