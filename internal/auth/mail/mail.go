// Package mail delivers transactional email. The verification flow only
// needs one message shape: the 6-digit code that confirms a signup or
// signin attempt.
package mail

import (
	"context"
	"fmt"
)

// Mailer sends a single HTML email. Implementations must return an error
// on delivery failure; the signup flow rolls back account creation when
// the verification mail cannot be sent.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// VerificationSubject is the subject line for the OTP email.
const VerificationSubject = "Your Relic verification code"

// VerificationBody renders the branded OTP email.
func VerificationBody(displayName, code string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Relic</h2>
  <p>Hi %s,</p>
  <p>Use this code to verify your identity. It expires in 30 minutes.</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
  <p>If you didn't request this, you can safely ignore this email.</p>
</div>`, displayName, code)
}
