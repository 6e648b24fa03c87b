package respond

import (
	"github.com/gin-gonic/gin"

	"documind-backend/internal/shared/telemetry"
)

// ErrorResponse is the body returned for every failed request.
// Code is a stable machine-readable identifier; Errors carries
// field-level validation detail when available.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, message string) {
	ErrorWithDetails(c, status, code, message, nil)
}

// ErrorWithDetails sends a standardized error response carrying
// field-level detail.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details []string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Message: message,
		Code:    code,
		Errors:  details,
	})
}
