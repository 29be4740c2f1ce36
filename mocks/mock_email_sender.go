package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lekha/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoice(ctx context.Context, msg *port.InvoiceEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
