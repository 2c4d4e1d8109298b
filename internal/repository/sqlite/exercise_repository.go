package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

type exerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository implementation
func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Insert(ctx context.Context, ex models.Exercise) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("inserting exercise: note_id=%d", ex.NoteID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO exercises (note_id, prompt, answer) VALUES (?, ?, ?)
`, ex.NoteID, ex.Prompt, ex.Answer)
	if err != nil {
		log.Error("failed to insert exercise: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *exerciseRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("deleting exercise: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete exercise: %v", err)
	}
	return err
}

func (r *exerciseRepository) Get(ctx context.Context, id int64) (*models.ExerciseWithNote, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("getting exercise: id=%d", id)

	var ex models.ExerciseWithNote
	err := r.db.QueryRowContext(ctx, `
SELECT e.id, e.note_id, e.prompt, e.answer, e.created_at, n.title
FROM exercises e
JOIN notes n ON n.id = e.note_id
WHERE e.id = ?
`, id).Scan(&ex.ID, &ex.NoteID, &ex.Prompt, &ex.Answer, &ex.CreatedAt, &ex.NoteTitle)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("exercise not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get exercise: %v", err)
		return nil, err
	}
	return &ex, nil
}

func (r *exerciseRepository) ForNote(ctx context.Context, noteID int64) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("listing exercises for note: note_id=%d", noteID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, note_id, prompt, answer, created_at
FROM exercises
WHERE note_id = ?
ORDER BY created_at
`, noteID)
	if err != nil {
		log.Error("failed to list exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.NoteID, &ex.Prompt, &ex.Answer, &ex.CreatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

func (r *exerciseRepository) Sample(ctx context.Context, limit int) ([]models.ExerciseWithNote, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("sampling exercises: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT e.id, e.note_id, e.prompt, e.answer, e.created_at, n.title
FROM exercises e
JOIN notes n ON n.id = e.note_id
ORDER BY RANDOM()
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to sample exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []models.ExerciseWithNote
	for rows.Next() {
		var ex models.ExerciseWithNote
		if err := rows.Scan(&ex.ID, &ex.NoteID, &ex.Prompt, &ex.Answer, &ex.CreatedAt, &ex.NoteTitle); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	log.Debug("sampled %d exercises", len(exercises))
	return exercises, rows.Err()
}

func (r *exerciseRepository) InsertPracticeHistory(ctx context.Context, rec models.PracticeRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("inserting practice history: exercise_id=%d, correct=%v", rec.ExerciseID, rec.Correct)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO practice_history (exercise_id, answer, correct, quality, feedback, confidence, time_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, rec.ExerciseID, rec.Answer, rec.Correct, rec.Quality, rec.Feedback, rec.Confidence, rec.TimeSeconds)
	if err != nil {
		log.Error("failed to insert practice history: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *exerciseRepository) UpdatePracticeConfidence(ctx context.Context, id int64, confidence float64) error {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("updating practice confidence: id=%d, confidence=%.2f", id, confidence)

	_, err := r.db.ExecContext(ctx, `
UPDATE practice_history SET confidence = ? WHERE id = ?
`, confidence, id)
	if err != nil {
		log.Error("failed to update practice confidence: %v", err)
	}
	return err
}
