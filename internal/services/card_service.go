package services

import (
	"context"
	"strings"
	"time"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/srs"
)

// CardService handles flashcard CRUD
type CardService interface {
	CreateCard(ctx context.Context, noteID int64, front, back string) (*models.Card, error)
	ListCards(ctx context.Context, noteID int64) ([]models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

type cardService struct {
	cardRepo repository.CardRepository
	noteRepo repository.NoteRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, noteRepo repository.NoteRepository) CardService {
	return &cardService{cardRepo: cardRepo, noteRepo: noteRepo}
}

func (s *cardService) CreateCard(ctx context.Context, noteID int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: note_id=%d", noteID)

	if strings.TrimSpace(front) == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if strings.TrimSpace(back) == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	card := srs.NewCard(noteID, front, back, time.Now())
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id

	log.Info("card created: id=%d, note_id=%d", id, noteID)
	return &card, nil
}

func (s *cardService) ListCards(ctx context.Context, noteID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: note_id=%d", noteID)

	note, err := s.noteRepo.Get(ctx, noteID)
	if err != nil {
		log.Error("failed to get note: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if note == nil {
		return nil, errors.NewNotFoundError("note", noteID)
	}

	cards, err := s.cardRepo.ForNote(ctx, noteID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
