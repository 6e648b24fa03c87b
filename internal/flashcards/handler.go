package flashcards

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches flashcard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/flashcards", h.list)
	rg.GET("/flashcards/:id", h.getByID)
	rg.PUT("/flashcards/:id/progress", h.updateProgress)
	rg.DELETE("/flashcards/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sets, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list flashcard sets")
		return
	}

	respond.OK(c, gin.H{"flashcardSets": sets})
}

func (h *Handler) getByID(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	set, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Flashcard set not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch flashcard set")
		return
	}

	respond.OK(c, gin.H{"flashcardSet": set})
}

type progressRequest struct {
	CardIndex *int `json:"cardIndex"`
	Mastered  bool `json:"mastered"`
}

func (h *Handler) updateProgress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	cardIndex := -1
	if req.CardIndex != nil {
		cardIndex = *req.CardIndex
	}

	set, err := h.Svc.UpdateProgress(c.Request.Context(), userID, c.Param("id"), cardIndex, req.Mastered)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Flashcard set not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update progress")
		return
	}

	respond.OK(c, gin.H{"flashcardSet": set})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Flashcard set not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete flashcard set")
		return
	}

	respond.OK(c, gin.H{"message": "Flashcard set deleted"})
}
