package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type sellerProfileRepo struct {
	db *sqlx.DB
}

// NewSellerProfileRepo creates a new PostgreSQL-backed SellerProfileRepository.
func NewSellerProfileRepo(db *sqlx.DB) port.SellerProfileRepository {
	return &sellerProfileRepo{db: db}
}

func (r *sellerProfileRepo) Get(ctx context.Context) (*domain.SellerProfile, error) {
	var profile domain.SellerProfile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM seller_profile ORDER BY updated_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSellerProfileNotFound
		}
		return nil, fmt.Errorf("sellerProfileRepo.Get: %w", err)
	}
	return &profile, nil
}

func (r *sellerProfileRepo) Upsert(ctx context.Context, profile *domain.SellerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO seller_profile (id, company_name, address, gstin, email, state, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   company_name = EXCLUDED.company_name, address = EXCLUDED.address,
		   gstin = EXCLUDED.gstin, email = EXCLUDED.email,
		   state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		profile.ID, profile.CompanyName, profile.Address, profile.GSTIN,
		profile.Email, profile.State, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sellerProfileRepo.Upsert: %w", err)
	}
	return nil
}
