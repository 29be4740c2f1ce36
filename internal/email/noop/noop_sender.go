// Package noop provides an EmailSender that logs instead of delivering.
// It keeps local development working without SES credentials.
package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"lekha/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a sender that records each message in the log.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoice(_ context.Context, msg *port.InvoiceEmail) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("attachment", msg.AttachmentName).
		Int("attachment_bytes", len(msg.Attachment)).
		Msg("noop email sender: message not delivered")
	return nil
}
