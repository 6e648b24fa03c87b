package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"documind-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", "test-model")
	c.apiURL = srv.URL
	return c, srv
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	raw, _ := json.Marshal(resp)
	return string(raw)
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  the answer  ")))
	})

	got, err := c.Complete(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "the answer" {
		t.Fatalf("content = %q, want trimmed answer", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != requestMaxTokens {
		t.Fatalf("max_tokens = %d", gotReq.MaxTokens)
	}
}

func TestCompleteNoAPIKey(t *testing.T) {
	c := NewClient("", "")
	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteTruncatesLongPrompt(t *testing.T) {
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody("ok")))
	})

	long := strings.Repeat("a", maxPromptChars+500)
	if _, err := c.Complete(context.Background(), long); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	sent := gotReq.Messages[0].Content
	if len(sent) != maxPromptChars+len(truncationMarker) {
		t.Fatalf("sent prompt length = %d", len(sent))
	}
	if !strings.HasSuffix(sent, truncationMarker) {
		t.Fatal("expected truncation marker suffix")
	}
}

func TestCompleteShortPromptNotTruncated(t *testing.T) {
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody("ok")))
	})

	if _, err := c.Complete(context.Background(), "short prompt"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotReq.Messages[0].Content != "short prompt" {
		t.Fatalf("prompt modified: %q", gotReq.Messages[0].Content)
	}
}

func TestCompleteStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: llm.ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, want: llm.ErrInvalidCredentials},
		{name: "forbidden", status: http.StatusForbidden, want: llm.ErrInvalidCredentials},
		{name: "rate limited", status: http.StatusTooManyRequests, want: llm.ErrRateLimited},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			})
			_, err := c.Complete(context.Background(), "hi")
			if !errors.Is(err, tt.want) {
				t.Fatalf("status %d: expected %v, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := c.Complete(context.Background(), "hi")
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", upstream.StatusCode)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("   ")))
	})

	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("test-key", "")
	c.apiURL = srv.URL
	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, llm.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestNewClientDefaultsModel(t *testing.T) {
	c := NewClient("k", "  ")
	if c.model != defaultModel {
		t.Fatalf("model = %q, want default", c.model)
	}
}
