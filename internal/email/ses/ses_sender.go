package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"lekha/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
}

// NewSESSender creates a new SES-backed EmailSender. Invoice emails carry a
// PDF attachment, so they go out as raw MIME rather than simple content.
func NewSESSender(region, fromAddress string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
	}, nil
}

func (s *sesSender) SendInvoice(ctx context.Context, msg *port.InvoiceEmail) error {
	raw, err := buildRawMessage(s.fromAddress, msg)
	if err != nil {
		return fmt.Errorf("building MIME message: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// buildRawMessage assembles a multipart/mixed message: an alternative
// text/html body plus the base64-encoded PDF attachment.
func buildRawMessage(fromAddress string, msg *port.InvoiceEmail) ([]byte, error) {
	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", msg.SenderName, fromAddress)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixed.Boundary())

	// Body: text and HTML alternatives.
	altBuf := &bytes.Buffer{}
	alt := multipart.NewWriter(altBuf)

	textPart, err := alt.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(msg.TextBody)); err != nil {
		return nil, err
	}

	if msg.HTMLBody != "" {
		htmlPart, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/html; charset=UTF-8"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
			return nil, err
		}
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}

	bodyPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary())},
	})
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	// Attachment.
	if len(msg.Attachment) > 0 {
		attachPart, err := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", msg.AttachmentName)},
		})
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		// 76-character lines per RFC 2045.
		for len(encoded) > 76 {
			if _, err := fmt.Fprintf(attachPart, "%s\r\n", encoded[:76]); err != nil {
				return nil, err
			}
			encoded = encoded[76:]
		}
		if _, err := fmt.Fprintf(attachPart, "%s\r\n", encoded); err != nil {
			return nil, err
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
