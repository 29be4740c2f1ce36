package port

import "context"

// InvoiceEmail is one outbound invoice notification with its attachment.
type InvoiceEmail struct {
	To             string
	ToName         string
	Subject        string
	TextBody       string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
	SenderName     string
}

// EmailSender delivers invoice emails. Delivery is synchronous and
// fire-once; retry is the caller's decision.
type EmailSender interface {
	SendInvoice(ctx context.Context, msg *InvoiceEmail) error
}
