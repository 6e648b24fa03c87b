package chats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/documents"
	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
	"documind-backend/internal/studygen"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/chat/:docId", h.get)
	rg.POST("/chat/:docId", h.send)
	rg.DELETE("/chat/:docId", h.clear)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	chat, err := h.Svc.Get(c.Request.Context(), userID, c.Param("docId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch chat")
		return
	}

	respond.OK(c, gin.H{"chat": chat})
}

type sendRequest struct {
	Message string `json:"message"`
}

func (h *Handler) send(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	chat, reply, err := h.Svc.Send(c.Request.Context(), userID, c.Param("docId"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Message is required")
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found")
		case errors.Is(err, studygen.ErrNoText):
			respond.Error(c, http.StatusBadRequest, "no_text", "No text extracted from this document. Chat requires readable text in the PDF.")
		default:
			studygen.RespondAIError(c, err)
		}
		return
	}

	respond.OK(c, gin.H{
		"chat":  chat,
		"reply": reply,
	})
}

func (h *Handler) clear(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Clear(c.Request.Context(), userID, c.Param("docId")); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear chat")
		return
	}

	respond.OK(c, gin.H{"message": "Chat cleared"})
}
