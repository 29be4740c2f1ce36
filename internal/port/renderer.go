package port

import (
	"context"

	"lekha/internal/domain"
)

// RenderedDocument is an opaque rendered invoice document.
type RenderedDocument struct {
	FileName    string
	ContentType string
	Content     []byte
}

// DocumentRenderer converts a composed invoice into a paginated document.
type DocumentRenderer interface {
	Render(ctx context.Context, inv *domain.Invoice) (*RenderedDocument, error)
}
