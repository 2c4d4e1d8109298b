package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview(ctx context.Context, now time.Time) (*models.OverviewStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing overview stats")

	var s models.OverviewStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM notes),
    (SELECT COUNT(*) FROM cards),
    (SELECT COUNT(*) FROM review_history),
    (SELECT COUNT(*) FROM cards WHERE due_at <= ?),
    (SELECT COUNT(*) FROM cards WHERE due_at > ? AND due_at <= ?),
    COALESCE((SELECT AVG(CASE WHEN quality >= 3 THEN 100.0 ELSE 0.0 END) FROM review_history), 0),
    COALESCE((SELECT AVG(ease_factor) FROM cards), 0),
    COALESCE((SELECT AVG(interval_days) FROM cards), 0)
`, now, now, now.Add(24*time.Hour)).
		Scan(&s.TotalNotes, &s.TotalCards, &s.TotalReviews, &s.CardsDue, &s.CardsDueSoon,
			&s.OverallAccuracy, &s.AvgEaseFactor, &s.AvgIntervalDays)
	if err != nil {
		log.Error("failed to compute overview stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) DailyReviewStats(ctx context.Context, days int) ([]models.DailyReviewStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing daily review stats: days=%d", days)

	if days < 1 {
		days = 30
	}
	cutoff := fmt.Sprintf("-%d days", days)

	rows, err := r.db.QueryContext(ctx, `
SELECT DATE(reviewed_at) AS day,
       COUNT(*) AS total,
       SUM(CASE WHEN quality >= 3 THEN 1 ELSE 0 END) AS correct,
       COALESCE(AVG(time_seconds), 0) AS avg_time
FROM review_history
WHERE reviewed_at >= DATE('now', ?)
GROUP BY DATE(reviewed_at)
ORDER BY day
`, cutoff)
	if err != nil {
		log.Error("failed to compute daily review stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyReviewStat
	for rows.Next() {
		var s models.DailyReviewStat
		if err := rows.Scan(&s.Day, &s.TotalReviews, &s.CorrectCount, &s.AvgTimeSecs); err != nil {
			return nil, err
		}
		if s.TotalReviews > 0 {
			s.Accuracy = float64(s.CorrectCount) / float64(s.TotalReviews) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) QualityStats(ctx context.Context) ([]models.QualityStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing quality stats")

	rows, err := r.db.QueryContext(ctx, `
SELECT quality, COUNT(*), COALESCE(AVG(time_seconds), 0)
FROM review_history
WHERE quality BETWEEN 1 AND 4
GROUP BY quality
ORDER BY quality
`)
	if err != nil {
		log.Error("failed to compute quality stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.QualityStat
	for rows.Next() {
		var s models.QualityStat
		if err := rows.Scan(&s.Quality, &s.Count, &s.AvgTimeSecs); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) PracticeStats(ctx context.Context) (*models.PracticeStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing practice stats")

	var s models.PracticeStat
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0),
       COALESCE(AVG(time_seconds), 0),
       COALESCE(AVG(confidence), 0)
FROM practice_history
`).Scan(&s.TotalAttempts, &s.CorrectCount, &s.AvgTimeSecs, &s.AvgConfidence)
	if err != nil {
		log.Error("failed to compute practice stats: %v", err)
		return nil, err
	}
	if s.TotalAttempts > 0 {
		s.Accuracy = float64(s.CorrectCount) / float64(s.TotalAttempts) * 100
	}
	return &s, nil
}
