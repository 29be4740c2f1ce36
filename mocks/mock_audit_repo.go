package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockAuditRepo is a mock implementation of port.AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, action, detail string) error {
	args := m.Called(ctx, action, detail)
	return args.Error(0)
}

func (m *MockAuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}
