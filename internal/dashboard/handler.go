package dashboard

import (
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

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.summary)
	rg.GET("/dashboard/activity", h.activity)
}

func (h *Handler) summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summary, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard summary")
		return
	}

	respond.OK(c, gin.H{"summary": summary})
}

func (h *Handler) activity(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	activities, err := h.Svc.Activity(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recent activity")
		return
	}

	respond.OK(c, gin.H{"activities": activities})
}
