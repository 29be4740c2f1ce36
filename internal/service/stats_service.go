package service

import (
	"context"
	"time"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// StatsService computes the dashboard aggregates.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	stats port.StatsRepository
}

// NewStatsService creates a stats service over the tracker aggregates.
func NewStatsService(stats port.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	return s.stats.GetStats(ctx, time.Now().UTC())
}
