package models

type OverviewStat struct {
	TotalNotes      int     `json:"total_notes"`
	TotalCards      int     `json:"total_cards"`
	TotalReviews    int     `json:"total_reviews"`
	CardsDue        int     `json:"cards_due"`
	CardsDueSoon    int     `json:"cards_due_soon"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

type DailyReviewStat struct {
	Day          string  `json:"day"` // YYYY-MM-DD
	TotalReviews int     `json:"total_reviews"`
	CorrectCount int     `json:"correct_count"`
	Accuracy     float64 `json:"accuracy"`
	AvgTimeSecs  float64 `json:"avg_time_seconds"`
}

type QualityStat struct {
	Quality     int     `json:"quality"`
	Count       int     `json:"count"`
	AvgTimeSecs float64 `json:"avg_time_seconds"`
}

type PracticeStat struct {
	TotalAttempts int     `json:"total_attempts"`
	CorrectCount  int     `json:"correct_count"`
	Accuracy      float64 `json:"accuracy"`
	AvgTimeSecs   float64 `json:"avg_time_seconds"`
	AvgConfidence float64 `json:"avg_confidence"`
}
