package email

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lekha/internal/domain"
	"lekha/internal/port"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		Number:  "INV-042",
		Date:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate: time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
		Seller:  domain.Party{Name: "Acme Traders"},
		Buyer:   domain.Party{Name: "Globex Pvt Ltd", Email: "buyer@globex.test"},
		Totals: domain.InvoiceTotals{
			GrandTotal: decimal.RequireFromString("123456.78"),
		},
	}
}

func sampleDoc() *port.RenderedDocument {
	return &port.RenderedDocument{
		FileName:    "Invoice_INV-042_Globex Pvt Ltd.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.7"),
	}
}

func TestNewInvoiceMessage(t *testing.T) {
	msg := NewInvoiceMessage(sampleInvoice(), "accounts@globex.test", sampleDoc())

	assert.Equal(t, "accounts@globex.test", msg.To)
	assert.Equal(t, "Invoice #INV-042 from Acme Traders", msg.Subject)
	assert.Equal(t, "Globex Pvt Ltd", msg.ToName)
	assert.Equal(t, "Acme Traders", msg.SenderName)
	assert.Equal(t, "Invoice_INV-042_Globex Pvt Ltd.pdf", msg.AttachmentName)
	assert.Equal(t, []byte("%PDF-1.7"), msg.Attachment)
	assert.Contains(t, msg.TextBody, "Rs. 1,23,456.78")
	assert.Contains(t, msg.TextBody, "Due Date: 16-04-2025")
	assert.Contains(t, msg.HTMLBody, "Invoice #INV-042")
	assert.Contains(t, msg.HTMLBody, "1,23,456.78")
}

func TestNewInvoiceMessageFallsBackToBuyerEmail(t *testing.T) {
	msg := NewInvoiceMessage(sampleInvoice(), "", sampleDoc())

	assert.Equal(t, "buyer@globex.test", msg.To)
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "Invoice_INV-042_Globex Pvt Ltd.pdf", AttachmentName("INV-042", "Globex Pvt Ltd"))
}
