package studygen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/documents"
	"documind-backend/internal/extract"
	"documind-backend/internal/flashcards"
	"documind-backend/internal/quizzes"
)

type countingCompleter struct {
	calls    int
	response string
}

func (cc *countingCompleter) Complete(_ context.Context, _ string) (string, error) {
	cc.calls++
	return cc.response, nil
}

// discardStore satisfies object.ObjectStore with just enough behavior
// to seed documents.
type discardStore struct{}

func (discardStore) Save(_ context.Context, userId, fileName string, r io.Reader) (string, int64, string, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", 0, "", err
	}
	return userId + "/" + fileName, n, "application/pdf", nil
}

func (discardStore) Open(_ context.Context, _ string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (discardStore) Delete(_ context.Context, _ string) error { return nil }

type fixedExtractor struct {
	res extract.Result
}

func (f fixedExtractor) Extract(_ context.Context, _ []byte) (extract.Result, error) {
	return f.res, nil
}

func newHandlerRouter(t *testing.T, text, response string) (*gin.Engine, *countingCompleter, documents.Document) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docSvc := &documents.Service{
		Store:     discardStore{},
		Repo:      documents.NewMemoryRepo(),
		Extractor: fixedExtractor{res: extract.Result{Text: text, PageCount: 1}},
	}
	doc, err := docSvc.Upload(context.Background(), "user-1", "Notes", "notes.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}

	completer := &countingCompleter{response: response}
	h := NewHandler(
		NewService(completer),
		docSvc,
		flashcards.NewService(flashcards.NewMemoryRepo()),
		quizzes.NewService(quizzes.NewMemoryRepo()),
	)

	r := gin.New()
	ai := r.Group("/api/ai")
	ai.Use(func(c *gin.Context) { c.Set("userId", "user-1") })
	h.RegisterRoutes(ai)
	return r, completer, doc
}

func TestGenerationEndpointsRejectTextlessDocument(t *testing.T) {
	r, completer, doc := newHandlerRouter(t, "", "unused")

	for _, path := range []string{"/api/ai/summary/", "/api/ai/flashcards/", "/api/ai/quiz/"} {
		req := httptest.NewRequest(http.MethodPost, path+doc.ID, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "No text extracted") {
			t.Fatalf("%s: missing no-text message: %s", path, resp.Body.String())
		}
	}
	if completer.calls != 0 {
		t.Fatalf("completer called %d times for textless document", completer.calls)
	}
}

func TestGenerationEndpointsUnknownDocument(t *testing.T) {
	r, completer, _ := newHandlerRouter(t, "body", "unused")

	req := httptest.NewRequest(http.MethodPost, "/api/ai/summary/missing-doc", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if completer.calls != 0 {
		t.Fatalf("completer called %d times for unknown document", completer.calls)
	}
}

func TestSummaryEndpointGeneratesAndPersists(t *testing.T) {
	r, completer, doc := newHandlerRouter(t, "readable body", "OVERVIEW\nA summary.")

	req := httptest.NewRequest(http.MethodPost, "/api/ai/summary/"+doc.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if completer.calls != 1 {
		t.Fatalf("completer calls = %d, want 1", completer.calls)
	}
	if !strings.Contains(resp.Body.String(), "A summary.") {
		t.Fatalf("summary missing from response: %s", resp.Body.String())
	}
}
