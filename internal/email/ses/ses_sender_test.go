package ses

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/port"
)

func TestBuildRawMessage(t *testing.T) {
	raw, err := buildRawMessage("billing@acme.test", &port.InvoiceEmail{
		To:             "accounts@globex.test",
		ToName:         "Globex Pvt Ltd",
		Subject:        "Invoice #INV-042 from Acme Traders",
		TextBody:       "Please find attached.",
		HTMLBody:       "<p>Please find attached.</p>",
		AttachmentName: "Invoice_INV-042_Globex.pdf",
		Attachment:     []byte("%PDF-1.7 fake body"),
		SenderName:     "Acme Traders",
	})
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "From: Acme Traders <billing@acme.test>\r\n")
	assert.Contains(t, msg, "To: accounts@globex.test\r\n")
	assert.Contains(t, msg, "Subject: Invoice #INV-042 from Acme Traders\r\n")
	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "text/plain; charset=UTF-8")
	assert.Contains(t, msg, "text/html; charset=UTF-8")
	assert.Contains(t, msg, `attachment; filename="Invoice_INV-042_Globex.pdf"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
}

func TestBuildRawMessageWithoutAttachment(t *testing.T) {
	raw, err := buildRawMessage("billing@acme.test", &port.InvoiceEmail{
		To:       "accounts@globex.test",
		Subject:  "Invoice",
		TextBody: "body",
	})
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(raw), "Content-Disposition: attachment"))
}
