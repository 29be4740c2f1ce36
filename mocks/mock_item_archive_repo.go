package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockItemArchiveRepo is a mock implementation of port.ItemArchiveRepository.
type MockItemArchiveRepo struct {
	mock.Mock
}

func (m *MockItemArchiveRepo) Append(ctx context.Context, items []domain.ArchivedItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemArchiveRepo) ListByInvoice(ctx context.Context, invoiceNumber string) ([]domain.ArchivedItem, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedItem), args.Error(1)
}
