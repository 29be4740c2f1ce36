package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) Render(ctx context.Context, inv *domain.Invoice) (*port.RenderedDocument, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RenderedDocument), args.Error(1)
}
