package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetStats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	var stats domain.Stats
	err := r.db.GetContext(ctx, &stats,
		`SELECT
		   COALESCE(SUM(grand_total), 0) AS total_invoiced,
		   COALESCE(SUM(grand_total) FILTER (WHERE status = $1), 0) AS total_collected,
		   COALESCE(SUM(grand_total) FILTER (WHERE status <> $1), 0) AS outstanding,
		   COUNT(*) FILTER (WHERE status <> $1 AND due_date < $2) AS overdue_count
		 FROM invoices`,
		domain.StatusPaid, now)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats: %w", err)
	}
	return &stats, nil
}
