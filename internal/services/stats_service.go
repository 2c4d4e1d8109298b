package services

import (
	"context"
	"time"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

// StatsService exposes analytics over persisted review and practice history
type StatsService interface {
	GetOverview(ctx context.Context) (*models.OverviewStat, error)
	GetDailyReviewStats(ctx context.Context, days int) ([]models.DailyReviewStat, error)
	GetQualityStats(ctx context.Context) ([]models.QualityStat, error)
	GetPracticeStats(ctx context.Context) (*models.PracticeStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetOverview(ctx context.Context) (*models.OverviewStat, error) {
	log := logger.FromContext(ctx)

	overview, err := s.statsRepo.Overview(ctx, time.Now())
	if err != nil {
		log.Error("failed to get overview stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return overview, nil
}

func (s *statsService) GetDailyReviewStats(ctx context.Context, days int) ([]models.DailyReviewStat, error) {
	log := logger.FromContext(ctx)

	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	stats, err := s.statsRepo.DailyReviewStats(ctx, days)
	if err != nil {
		log.Error("failed to get daily review stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) GetQualityStats(ctx context.Context) ([]models.QualityStat, error) {
	log := logger.FromContext(ctx)

	stats, err := s.statsRepo.QualityStats(ctx)
	if err != nil {
		log.Error("failed to get quality stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) GetPracticeStats(ctx context.Context) (*models.PracticeStat, error) {
	log := logger.FromContext(ctx)

	stats, err := s.statsRepo.PracticeStats(ctx)
	if err != nil {
		log.Error("failed to get practice stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
