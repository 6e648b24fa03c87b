package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/shared/auth"
	"documind-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth validates the bearer token and stores the caller identity in context.
// A ?token= query parameter is accepted as a fallback for contexts that
// cannot set headers, e.g. the embedded PDF viewer.
func Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		token := bearerToken(c)
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Not authorized, no token provided")
			return
		}

		userID, err := auth.VerifyToken(token, jwtSecret)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				respond.Error(c, http.StatusUnauthorized, "token_expired", "Token expired, please login again")
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Not authorized, token invalid")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
