package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
	"lekha/internal/service"
)

// MockLifecycleService is a mock implementation of service.LifecycleService.
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) CreateInvoice(ctx context.Context, input service.CreateInvoiceInput) (*domain.TrackerEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerEntry), args.Error(1)
}

func (m *MockLifecycleService) Get(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerEntry), args.Error(1)
}

func (m *MockLifecycleService) List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TrackerEntry), args.Int(1), args.Error(2)
}

func (m *MockLifecycleService) SendFromHistory(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerEntry), args.Error(1)
}

func (m *MockLifecycleService) ChangeStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) (*domain.TrackerEntry, error) {
	args := m.Called(ctx, invoiceNumber, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerEntry), args.Error(1)
}

func (m *MockLifecycleService) SendReminder(ctx context.Context, entry *domain.TrackerEntry, now time.Time) error {
	args := m.Called(ctx, entry, now)
	return args.Error(0)
}
