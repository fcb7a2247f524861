// Package notify holds the outbound message senders behind the EmailSender,
// SMSSender and InvoicePDFRenderer ports. Delivery mechanics live with the
// provider; these implementations log the message and hand it off to the
// operator's relay of choice later. Swapping in a real provider touches only
// this package.
package notify

import (
	"context"
	"log/slog"

	"meddrop/internal/core/ports"
)

// LogEmailSender implements ports.EmailSender by logging the message. Used
// until an SMTP or provider relay is wired in.
type LogEmailSender struct {
	logger *slog.Logger
}

// NewLogEmailSender creates the logging email sender.
func NewLogEmailSender(logger *slog.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger.With("component", "email_sender")}
}

// Send logs the email instead of delivering it.
func (s *LogEmailSender) Send(
	ctx context.Context, to, subject, text, _ string, attachments ...ports.Attachment,
) error {
	s.logger.InfoContext(ctx, "Email queued",
		"to", to,
		"subject", subject,
		"body_bytes", len(text),
		"attachments", len(attachments))
	return nil
}
