package quizzes

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

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quizzes", h.list)
	rg.GET("/quizzes/:id", h.getByID)
	rg.PUT("/quizzes/:id/submit", h.submit)
	rg.DELETE("/quizzes/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	quizzes, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list quizzes")
		return
	}

	// Answer keys are never exposed in list rows, even for completed
	// quizzes, to keep list payloads small.
	views := make([]quizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		views = append(views, toView(quiz, false))
	}

	respond.OK(c, gin.H{"quizzes": views})
}

func (h *Handler) getByID(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	quiz, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Quiz not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch quiz")
		return
	}

	respond.OK(c, gin.H{"quiz": toView(quiz, quiz.Completed)})
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	quiz, err := h.Svc.Submit(c.Request.Context(), userID, c.Param("id"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Quiz not found")
		case errors.Is(err, ErrAlreadySubmitted):
			respond.Error(c, http.StatusConflict, "already_submitted", "Quiz already submitted")
		case errors.Is(err, ErrAnswerMismatch):
			respond.Error(c, http.StatusBadRequest, "validation_error", "answers must cover every question")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit quiz")
		}
		return
	}

	respond.OK(c, gin.H{"quiz": toView(quiz, true)})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Quiz not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete quiz")
		return
	}

	respond.OK(c, gin.H{"message": "Quiz deleted"})
}
