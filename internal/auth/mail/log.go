package mail

import (
	"context"

	"github.com/powoftech/relic-chat/pkg/slogx"
)

// LogMailer writes mail to the log instead of sending it. Used in dev so
// the flow works without a Resend API key.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	slogx.FromContext(ctx).Info("mail (not sent, log mailer)",
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}
