package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type itemArchiveRepo struct {
	db *sqlx.DB
}

// NewItemArchiveRepo creates a new PostgreSQL-backed ItemArchiveRepository.
func NewItemArchiveRepo(db *sqlx.DB) port.ItemArchiveRepository {
	return &itemArchiveRepo{db: db}
}

func (r *itemArchiveRepo) Append(ctx context.Context, items []domain.ArchivedItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	query := `INSERT INTO invoice_items (
		id, invoice_number, serial, item_name, hsn_code,
		quantity, rate, discount, taxable, gst_rate,
		cgst, sgst, igst, line_total, created_at
	) VALUES (
		:id, :invoice_number, :serial, :item_name, :hsn_code,
		:quantity, :rate, :discount, :taxable, :gst_rate,
		:cgst, :sgst, :igst, :line_total, :created_at
	)`

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].CreatedAt = now
	}

	if _, err := r.db.NamedExecContext(ctx, query, items); err != nil {
		return fmt.Errorf("itemArchiveRepo.Append: %w", err)
	}
	return nil
}

func (r *itemArchiveRepo) ListByInvoice(ctx context.Context, invoiceNumber string) ([]domain.ArchivedItem, error) {
	var items []domain.ArchivedItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM invoice_items WHERE invoice_number = $1 ORDER BY serial ASC",
		invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("itemArchiveRepo.ListByInvoice: %w", err)
	}
	return items, nil
}
