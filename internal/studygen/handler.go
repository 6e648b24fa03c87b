package studygen

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/documents"
	"documind-backend/internal/flashcards"
	"documind-backend/internal/quizzes"
	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
	"documind-backend/internal/shared/telemetry"
)

// Handler wires the AI generation endpoints. Generated material is
// persisted through the owning domain services.
type Handler struct {
	Svc        *Service
	Documents  *documents.Service
	Flashcards *flashcards.Service
	Quizzes    *quizzes.Service
}

func NewHandler(svc *Service, docs *documents.Service, cards *flashcards.Service, qz *quizzes.Service) *Handler {
	return &Handler{Svc: svc, Documents: docs, Flashcards: cards, Quizzes: qz}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summary/:docId", h.summary)
	rg.POST("/flashcards/:docId", h.flashcards)
	rg.POST("/quiz/:docId", h.quiz)
}

// loadReadableDocument fetches the document and enforces the text
// precondition before any LLM call is made.
func (h *Handler) loadReadableDocument(c *gin.Context) (documents.Document, bool) {
	userID := middleware.UserIDFromContext(c)

	doc, err := h.Documents.Get(c.Request.Context(), userID, c.Param("docId"))
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found")
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document")
		}
		return documents.Document{}, false
	}
	if !doc.HasText() {
		RespondAIError(c, ErrNoText)
		return documents.Document{}, false
	}
	return doc, true
}

func (h *Handler) summary(c *gin.Context) {
	doc, ok := h.loadReadableDocument(c)
	if !ok {
		return
	}

	telemetry.Info("studygen.summary", map[string]any{
		"document_id": doc.ID,
		"text_chars":  len(doc.ExtractedText),
	})

	summary, err := h.Svc.Summarize(c.Request.Context(), doc.ExtractedText)
	if err != nil {
		RespondAIError(c, err)
		return
	}

	if err := h.Documents.UpdateSummary(c.Request.Context(), doc.UserID, doc.ID, summary); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save summary")
		return
	}

	respond.OK(c, gin.H{"summary": summary})
}

type countRequest struct {
	Count int `json:"count"`
}

func (h *Handler) flashcards(c *gin.Context) {
	doc, ok := h.loadReadableDocument(c)
	if !ok {
		return
	}

	var req countRequest
	_ = c.ShouldBindJSON(&req)

	cards, err := h.Svc.GenerateFlashcards(c.Request.Context(), doc.ExtractedText, req.Count)
	if err != nil {
		RespondAIError(c, err)
		return
	}

	set, err := h.Flashcards.Create(c.Request.Context(), doc.UserID, doc.ID, "Flashcards - "+doc.Title, cards)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save flashcard set")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"flashcardSet": set})
}

func (h *Handler) quiz(c *gin.Context) {
	doc, ok := h.loadReadableDocument(c)
	if !ok {
		return
	}

	var req countRequest
	_ = c.ShouldBindJSON(&req)

	questions, err := h.Svc.GenerateQuiz(c.Request.Context(), doc.ExtractedText, req.Count)
	if err != nil {
		RespondAIError(c, err)
		return
	}

	quiz, err := h.Quizzes.Create(c.Request.Context(), doc.UserID, doc.ID, "Quiz - "+doc.Title, questions)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save quiz")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"quiz": quiz})
}
