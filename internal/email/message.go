// Package email builds the outbound invoice notification from a composed
// invoice. Transport-specific senders live in the subpackages.
package email

import (
	"fmt"
	"strings"

	"lekha/internal/domain"
	"lekha/internal/port"
)

const dateLayout = "02-01-2006"

// AttachmentName returns the canonical PDF filename for an invoice.
func AttachmentName(invoiceNumber, clientName string) string {
	return fmt.Sprintf("Invoice_%s_%s.pdf", invoiceNumber, clientName)
}

// NewInvoiceMessage assembles the invoice email with the rendered document
// attached. The recipient falls back to the buyer's email when to is empty.
func NewInvoiceMessage(inv *domain.Invoice, to string, doc *port.RenderedDocument) *port.InvoiceEmail {
	if to == "" {
		to = inv.Buyer.Email
	}

	subject := fmt.Sprintf("Invoice #%s from %s", inv.Number, inv.Seller.Name)
	amount := domain.FormatINR(inv.Totals.GrandTotal)

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", inv.Buyer.Name)
	fmt.Fprintf(&text, "Please find attached Invoice #%s dated %s.\n\n",
		inv.Number, inv.Date.Format(dateLayout))
	fmt.Fprintf(&text, "Amount Due: Rs. %s\n", amount)
	fmt.Fprintf(&text, "Due Date: %s\n\n", inv.DueDate.Format(dateLayout))
	fmt.Fprintf(&text, "Thank you for your business.\n\nRegards,\n%s\n", inv.Seller.Name)

	var html strings.Builder
	html.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e0e0e0;border-radius:8px;overflow:hidden">`)
	fmt.Fprintf(&html, `<div style="background:#1a237e;color:#ffffff;padding:24px"><h2 style="margin:0">Invoice #%s</h2></div>`, inv.Number)
	html.WriteString(`<div style="padding:24px;color:#333333">`)
	fmt.Fprintf(&html, `<p>Dear %s,</p>`, inv.Buyer.Name)
	fmt.Fprintf(&html, `<p>Please find attached Invoice #%s dated %s.</p>`, inv.Number, inv.Date.Format(dateLayout))
	html.WriteString(`<table style="width:100%;border-collapse:collapse;margin:16px 0">`)
	fmt.Fprintf(&html, `<tr><td style="padding:8px;border-bottom:1px solid #eeeeee">Amount Due</td><td style="padding:8px;border-bottom:1px solid #eeeeee;text-align:right"><strong>&#8377; %s</strong></td></tr>`, amount)
	fmt.Fprintf(&html, `<tr><td style="padding:8px">Due Date</td><td style="padding:8px;text-align:right">%s</td></tr>`, inv.DueDate.Format(dateLayout))
	html.WriteString(`</table>`)
	fmt.Fprintf(&html, `<p>Thank you for your business.</p><p>Regards,<br>%s</p>`, inv.Seller.Name)
	html.WriteString(`</div></div>`)

	return &port.InvoiceEmail{
		To:             to,
		ToName:         inv.Buyer.Name,
		Subject:        subject,
		TextBody:       text.String(),
		HTMLBody:       html.String(),
		AttachmentName: doc.FileName,
		Attachment:     doc.Content,
		SenderName:     inv.Seller.Name,
	}
}
