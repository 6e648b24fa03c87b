package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"documind-backend/internal/shared/auth"
	appmail "documind-backend/internal/shared/mail"
	"documind-backend/internal/shared/telemetry"
)

const (
	bcryptCost        = 12
	minPasswordLength = 6
	otpTTL            = 10 * time.Minute
)

var (
	// ErrWrongPassword means the supplied password did not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidReset means the OTP or reset token is wrong or expired.
	ErrInvalidReset = errors.New("invalid or expired reset credential")
	// ErrValidation means the request failed input validation.
	ErrValidation = errors.New("validation failed")
)

type Service struct {
	Repo      Repo
	Mailer    appmail.Sender
	JWTSecret []byte

	now func() time.Time
}

func NewService(repo Repo, mailer appmail.Sender, jwtSecret []byte) *Service {
	return &Service{
		Repo:      repo,
		Mailer:    mailer,
		JWTSecret: jwtSecret,
		now:       time.Now,
	}
}

// Register creates a new account and returns the user with a signed token.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return User{}, "", fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(username) < 3 || len(username) > 30 {
		return User{}, "", fmt.Errorf("%w: username must be between 3 and 30 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return User{}, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := auth.SignToken(user.ID, s.JWTSecret)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Returns ErrNotFound for an unknown email and ErrWrongPassword for a
// bad password so the handler can distinguish the two.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrWrongPassword
	}

	token, err := auth.SignToken(user.ID, s.JWTSecret)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID loads a user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, string(hash))
}

// ForgotPassword issues a 6-digit OTP, stores its hash, and emails it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := randomOTP()
	if err != nil {
		return err
	}

	expires := s.now().UTC().Add(otpTTL)
	if err := s.Repo.SetResetCredential(ctx, user.ID, hashCredential(otp), expires); err != nil {
		return err
	}

	if err := s.Mailer.Send(ctx, user.Email, "DocuMind - Password Reset Code", otpEmailBody(otp)); err != nil {
		telemetry.Error("users.otp_mail_failed", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}

// VerifyOTP checks the OTP and swaps in a one-time reset token so the
// code cannot be replayed. The stored expiry is kept.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return "", fmt.Errorf("%w: email and OTP are required", ErrValidation)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidReset
		}
		return "", err
	}
	if !s.resetCredentialValid(user, otp) {
		return "", ErrInvalidReset
	}

	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	resetToken := hex.EncodeToString(raw[:])

	if err := s.Repo.SetResetCredential(ctx, user.ID, hashCredential(resetToken), *user.ResetOTPExpires); err != nil {
		return "", err
	}
	return resetToken, nil
}

// ResetPassword completes the flow using the token issued by VerifyOTP.
func (s *Service) ResetPassword(ctx context.Context, email, resetToken, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || resetToken == "" || newPassword == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidReset
		}
		return err
	}
	if !s.resetCredentialValid(user, resetToken) {
		return ErrInvalidReset
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.Repo.ClearResetCredential(ctx, user.ID)
}

func (s *Service) resetCredentialValid(user User, candidate string) bool {
	if user.ResetOTPHash == "" || user.ResetOTPExpires == nil {
		return false
	}
	if !user.ResetOTPExpires.After(s.now().UTC()) {
		return false
	}
	expected := []byte(user.ResetOTPHash)
	actual := []byte(hashCredential(candidate))
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

func hashCredential(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpEmailBody(otp string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 32px;">
  <h1 style="text-align: center; margin-bottom: 8px;">DocuMind</h1>
  <p style="text-align: center; font-size: 14px;">Password Reset Verification</p>
  <div style="text-align: center; margin: 24px 0;">
    <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</div>
  </div>
  <p style="font-size: 12px; text-align: center;">This code expires in 10 minutes. If you didn't request this, ignore this email.</p>
</div>`, otp)
}
