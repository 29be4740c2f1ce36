package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, entry *domain.TrackerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerEntry), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TrackerEntry), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListDue(ctx context.Context, now time.Time) ([]domain.TrackerEntry, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackerEntry), args.Error(1)
}

func (m *MockInvoiceRepo) SetStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error {
	args := m.Called(ctx, invoiceNumber, status, notes)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Freeze(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error {
	args := m.Called(ctx, invoiceNumber, status, notes)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MarkSent(ctx context.Context, invoiceNumber string, sentAt, nextDueAt time.Time, notes, documentURL string) error {
	args := m.Called(ctx, invoiceNumber, sentAt, nextDueAt, notes, documentURL)
	return args.Error(0)
}

func (m *MockInvoiceRepo) AdvanceReminder(ctx context.Context, invoiceNumber string, now, nextDueAt time.Time, notes string) (bool, error) {
	args := m.Called(ctx, invoiceNumber, now, nextDueAt, notes)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepo) NextInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}
