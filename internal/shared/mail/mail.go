package mail

import (
	"context"

	"documind-backend/internal/shared/telemetry"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogSender is the dev fallback when SMTP is not configured. It logs the
// message instead of delivering it, so the OTP flow stays testable locally.
type LogSender struct{}

// Send logs the outbound message.
func (LogSender) Send(ctx context.Context, to, subject, html string) error {
	_ = ctx
	telemetry.Info("mail.skipped", map[string]any{
		"to":      to,
		"subject": subject,
		"bytes":   len(html),
	})
	return nil
}
