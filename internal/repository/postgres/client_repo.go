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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	// First match wins for duplicate names, matching the master sheet's
	// top-down lookup order.
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE name = $1 ORDER BY created_at ASC LIMIT 1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByName: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.SelectContext(ctx, &clients, "SELECT * FROM clients ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, nil
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	now := time.Now().UTC()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, email, gstin, address, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		client.ID, client.Name, client.Email, client.GSTIN, client.Address, client.State,
		client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}
