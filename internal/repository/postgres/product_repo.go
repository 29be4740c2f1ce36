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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	// created_at ordering keeps catalog defaulting deterministic when two
	// products share a name (first row wins).
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, hsn_code, rate, gst_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.Name, product.Description, product.HSNCode,
		product.Rate, product.GSTRate, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}
