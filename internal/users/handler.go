package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes mounts the routes that do not require a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/forgot-password", h.forgotPassword)
	rg.POST("/verify-otp", h.verifyOTP)
	rg.POST("/reset-password", h.resetPassword)
}

// RegisterRoutes mounts the routes behind auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/change-password", h.changePassword)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	user, token, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "This email is already registered. Please login instead.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register")
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"user":  publicUser(user),
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Account not found. Please register first.")
		case errors.Is(err, ErrWrongPassword):
			respond.Error(c, http.StatusUnauthorized, "WRONG_PASSWORD", "Incorrect password. Please enter correct credentials.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to login")
		}
		return
	}

	respond.OK(c, gin.H{
		"user":  publicUser(user),
		"token": token,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user")
		return
	}

	respond.OK(c, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	userID := middleware.UserIDFromContext(c)
	err := h.Svc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrWrongPassword):
			respond.Error(c, http.StatusBadRequest, "wrong_password", "Current password is incorrect")
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to change password")
		}
		return
	}

	respond.OK(c, gin.H{"message": "Password updated successfully"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "No account found with this email address.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send verification code")
		}
		return
	}

	respond.OK(c, gin.H{"message": "Verification code sent to your email."})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	resetToken, err := h.Svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrInvalidReset):
			respond.Error(c, http.StatusBadRequest, "invalid_otp", "Invalid or expired verification code.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify code")
		}
		return
	}

	respond.OK(c, gin.H{
		"message":    "OTP verified successfully.",
		"resetToken": resetToken,
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.ResetToken, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		case errors.Is(err, ErrInvalidReset):
			respond.Error(c, http.StatusBadRequest, "invalid_reset_token", "Invalid or expired reset token. Please restart the process.")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset password")
		}
		return
	}

	respond.OK(c, gin.H{"message": "Password reset successfully."})
}

func publicUser(user User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
