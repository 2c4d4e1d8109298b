package services

import (
	"context"
	"time"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

// ExerciseService manages practice exercises attached to notes
type ExerciseService interface {
	CreateExercise(ctx context.Context, noteID int64, prompt, answer string) (*models.Exercise, error)
	ListExercises(ctx context.Context, noteID int64) ([]models.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	noteRepo     repository.NoteRepository
}

// NewExerciseService creates a new ExerciseService
func NewExerciseService(exerciseRepo repository.ExerciseRepository, noteRepo repository.NoteRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		noteRepo:     noteRepo,
	}
}

func (s *exerciseService) CreateExercise(ctx context.Context, noteID int64, prompt, answer string) (*models.Exercise, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating exercise: note_id=%d", noteID)

	if prompt == "" {
		return nil, errors.NewValidationError("prompt", "is required")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "is required")
	}

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	ex := models.Exercise{
		NoteID:    noteID,
		Prompt:    prompt,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	id, err := s.exerciseRepo.Insert(ctx, ex)
	if err != nil {
		log.Error("failed to insert exercise: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ex.ID = id

	log.Info("exercise created: id=%d, note_id=%d", id, noteID)
	return &ex, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, noteID int64) ([]models.Exercise, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	exercises, err := s.exerciseRepo.ForNote(ctx, noteID)
	if err != nil {
		log.Error("failed to list exercises: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return exercises, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting exercise: id=%d", id)

	ex, err := s.exerciseRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get exercise: %v", err)
		return errors.NewInternalError(err)
	}
	if ex == nil {
		return errors.NewNotFoundError("exercise", id)
	}

	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete exercise: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("exercise deleted: id=%d", id)
	return nil
}
