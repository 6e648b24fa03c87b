package studygen

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/llm"
	"documind-backend/internal/shared/server/respond"
)

const noTextMessage = "No text extracted from this document. This may be a scanned/image PDF. AI features require readable text."

// RespondAIError maps generation failures onto HTTP statuses. Chat
// shares this mapping so every AI surface fails the same way.
func RespondAIError(c *gin.Context, err error) {
	var upstream *llm.UpstreamError
	switch {
	case errors.Is(err, ErrNoText):
		respond.Error(c, http.StatusBadRequest, "no_text", noTextMessage)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI is not configured on this server.")
	case errors.Is(err, llm.ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "ai_invalid_key", "Invalid AI provider credentials.")
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "ai_rate_limited", "AI provider rate limit exceeded. Please try again later.")
	case errors.Is(err, llm.ErrBadRequest):
		respond.Error(c, http.StatusBadRequest, "ai_bad_request", "AI provider rejected the request.")
	case errors.Is(err, llm.ErrUnreachable):
		respond.Error(c, http.StatusServiceUnavailable, "ai_unreachable", "Failed to connect to the AI provider.")
	case errors.Is(err, llm.ErrEmptyCompletion):
		respond.Error(c, http.StatusBadGateway, "ai_empty_response", "Empty response from the AI provider.")
	case errors.Is(err, ErrParse):
		respond.Error(c, http.StatusBadGateway, "ai_parse_error", "Failed to parse the AI response. Please try again.")
	case errors.As(err, &upstream):
		respond.Error(c, upstream.StatusCode, "ai_upstream_error", "AI provider error.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "AI generation failed.")
	}
}
