package services

import (
	"context"
	"strings"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/markdown"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
)

// NoteService handles note-related business logic
type NoteService interface {
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, int, error)
}

// Reindexer schedules a rebuild of a note's outgoing links.
type Reindexer interface {
	ScheduleReindex(noteID int64)
}

type noteService struct {
	noteRepo  repository.NoteRepository
	reindexer Reindexer
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository, reindexer Reindexer) NoteService {
	return &noteService{noteRepo: noteRepo, reindexer: reindexer}
}

func (s *noteService) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	log := logger.FromContext(ctx)
	title = strings.TrimSpace(title)
	log.Debug("creating note: title=%q", title)

	if title == "" {
		return nil, errors.NewValidationError("title", "cannot be empty")
	}

	existing, err := s.noteRepo.GetByTitle(ctx, title)
	if err != nil {
		log.Error("failed to check for existing note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("a note with this title already exists")
	}

	id, err := s.noteRepo.Insert(ctx, models.Note{Title: title, Content: content})
	if err != nil {
		log.Error("failed to insert note: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if s.reindexer != nil {
		s.reindexer.ScheduleReindex(id)
	}

	log.Info("note created: id=%d, title=%q", id, title)
	return s.GetNote(ctx, id)
}

func (s *noteService) UpdateNote(ctx context.Context, id int64, title, content string) (*models.Note, error) {
	log := logger.FromContext(ctx)
	title = strings.TrimSpace(title)
	log.Debug("updating note: id=%d", id)

	if title == "" {
		return nil, errors.NewValidationError("title", "cannot be empty")
	}

	note, err := s.noteRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", id)
	}

	note.Title = title
	note.Content = content
	if err := s.noteRepo.Update(ctx, *note); err != nil {
		log.Error("failed to update note: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if s.reindexer != nil {
		s.reindexer.ScheduleReindex(id)
	}

	return s.GetNote(ctx, id)
}

func (s *noteService) DeleteNote(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting note: id=%d", id)

	note, err := s.noteRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return errors.NewInternalError(err)
	}
	if note == nil {
		return errors.NewNotFoundError("note", id)
	}

	// Cards, exercises and links cascade in the schema.
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete note: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("note deleted: id=%d", id)
	return nil
}

func (s *noteService) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting note: id=%d", id)

	note, err := s.noteRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", id)
	}

	html, err := markdown.Render(note.Content)
	if err != nil {
		log.Warn("failed to render note markdown: %v", err)
		// Serve the raw content rather than failing the read.
	} else {
		note.HTML = html
	}
	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing notes: query=%q", filter.Query)

	notes, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list notes: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.noteRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count notes: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return notes, totalCount, nil
}
