package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"documind-backend/internal/extract"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Save(_ context.Context, userId, fileName string, r io.Reader) (string, int64, string, error) {
	if f.saveErr != nil {
		return "", 0, "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := userId + "/" + fileName
	f.mu.Lock()
	f.objects[key] = data
	f.mu.Unlock()
	return key, int64(len(data)), "application/pdf", nil
}

func (f *fakeStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

type fakeExtractor struct {
	res extract.Result
	err error
}

func (f fakeExtractor) Extract(_ context.Context, _ []byte) (extract.Result, error) {
	return f.res, f.err
}

func newTestService(ex TextExtractor) (*Service, *fakeStore, *MemoryRepo) {
	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo, Extractor: ex}
	return svc, store, repo
}

func TestUploadExtractsText(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{res: extract.Result{Text: "hello", PageCount: 4}})

	doc, err := svc.Upload(context.Background(), "user-1", "", "notes.pdf", []byte("%PDF-1.4 data"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.ExtractedText != "hello" || doc.PageCount != 4 {
		t.Fatalf("extraction not recorded: %+v", doc)
	}
	if doc.Title != "notes" {
		t.Fatalf("title should default to file name without extension, got %q", doc.Title)
	}
	if !doc.HasText() {
		t.Fatal("HasText should be true")
	}
	if doc.FileSize != int64(len("%PDF-1.4 data")) {
		t.Fatalf("file size = %d", doc.FileSize)
	}
}

func TestUploadTitleOverride(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{})

	doc, err := svc.Upload(context.Background(), "user-1", "  My Title  ", "notes.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.Title != "My Title" {
		t.Fatalf("title = %q", doc.Title)
	}
}

func TestUploadToleratesExtractionFailure(t *testing.T) {
	svc, _, repo := newTestService(fakeExtractor{err: errors.New("corrupt pdf")})

	doc, err := svc.Upload(context.Background(), "user-1", "", "scan.pdf", []byte("junk"))
	if err != nil {
		t.Fatalf("Upload should tolerate extraction failure: %v", err)
	}
	if doc.HasText() {
		t.Fatal("expected no text")
	}

	stored, err := repo.GetByID(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("document not persisted: %v", err)
	}
	if stored.ExtractedText != "" || stored.PageCount != 0 {
		t.Fatalf("unexpected stored extraction: %+v", stored)
	}
}

func TestUploadStoreFailureAborts(t *testing.T) {
	svc, store, _ := newTestService(fakeExtractor{})
	store.saveErr = errors.New("disk full")

	if _, err := svc.Upload(context.Background(), "user-1", "", "notes.pdf", []byte("x")); err == nil {
		t.Fatal("expected error when store fails")
	}
}

func TestUploadValidation(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{})

	if _, err := svc.Upload(context.Background(), "user-1", "", "", []byte("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "user-1", "", "notes.pdf", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty payload, got %v", err)
	}
}

func TestDeleteRemovesFileAndRow(t *testing.T) {
	svc, store, repo := newTestService(fakeExtractor{})
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user-1", "", "notes.pdf", []byte("data"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, "user-1", doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "user-1", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row should be gone, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatal("backing file should be removed")
	}
}

func TestDeleteWrongUser(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{})
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user-1", "", "notes.pdf", []byte("data"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, "user-2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user delete must fail with ErrNotFound, got %v", err)
	}
}

func TestFileStreamsOriginal(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{})
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user-1", "", "notes.pdf", []byte("pdf-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, body, err := svc.File(ctx, "user-1", doc.ID)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Fatalf("body = %q", data)
	}
	if got.ID != doc.ID {
		t.Fatal("wrong document returned")
	}
}

func TestListOmitsTextAndSortsNewestFirst(t *testing.T) {
	svc, _, _ := newTestService(fakeExtractor{res: extract.Result{Text: strings.Repeat("x", 100), PageCount: 1}})
	ctx := context.Background()

	first, err := svc.Upload(ctx, "user-1", "first", "a.pdf", []byte("a"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	second, err := svc.Upload(ctx, "user-1", "second", "b.pdf", []byte("b"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	_ = first
	_ = second

	out, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	for _, item := range out {
		if item.ExtractedText != "" {
			t.Fatal("list must omit extracted text")
		}
	}
}
