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

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Append(ctx context.Context, action, detail string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, action, detail, created_at) VALUES ($1, $2, $3, $4)",
		uuid.New(), action, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("auditRepo.Append: %w", err)
	}
	return nil
}

func (r *auditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM audit_log ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.List: %w", err)
	}
	return entries, nil
}
