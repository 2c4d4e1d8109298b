package repository

import (
	"context"
	"time"

	"github.com/mbruna/mindvault/internal/models"
)

// NoteRepository handles note data access
type NoteRepository interface {
	Insert(ctx context.Context, note models.Note) (int64, error)
	Update(ctx context.Context, note models.Note) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Note, error)
	GetByTitle(ctx context.Context, title string) (*models.Note, error)
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	Count(ctx context.Context, filter models.NoteFilter) (int, error)
}

// GraphRepository handles the wiki-link graph between notes
type GraphRepository interface {
	ReplaceLinks(ctx context.Context, sourceID int64, targetIDs []int64) error
	Graph(ctx context.Context) (*models.Graph, error)
	Neighbors(ctx context.Context, noteID int64) ([]models.GraphNode, error)
}

// CardRepository handles flashcard data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.CardWithNote, error)
	ForNote(ctx context.Context, noteID int64) ([]models.Card, error)
	DueCards(ctx context.Context, now time.Time, limit int) ([]models.CardWithNote, error)
	CountDue(ctx context.Context, now time.Time) (int, error)
	InsertReviewHistory(ctx context.Context, cardID int64, quality, timeSeconds int) error
}

// ExerciseRepository handles practice exercise data access
type ExerciseRepository interface {
	Insert(ctx context.Context, ex models.Exercise) (int64, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.ExerciseWithNote, error)
	ForNote(ctx context.Context, noteID int64) ([]models.Exercise, error)
	Sample(ctx context.Context, limit int) ([]models.ExerciseWithNote, error)
	InsertPracticeHistory(ctx context.Context, rec models.PracticeRecord) (int64, error)
	UpdatePracticeConfidence(ctx context.Context, id int64, confidence float64) error
}

// StatsRepository handles analytics queries over persisted history
type StatsRepository interface {
	Overview(ctx context.Context, now time.Time) (*models.OverviewStat, error)
	DailyReviewStats(ctx context.Context, days int) ([]models.DailyReviewStat, error)
	QualityStats(ctx context.Context) ([]models.QualityStat, error)
	PracticeStats(ctx context.Context) (*models.PracticeStat, error)
}
