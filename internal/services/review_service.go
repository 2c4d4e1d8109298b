package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/session"
	"github.com/mbruna/mindvault/internal/srs"
)

// ReviewState is the UI-facing snapshot of a running review session.
type ReviewState struct {
	SessionID    string                 `json:"session_id"`
	Current      *models.CardWithNote   `json:"current,omitempty"`
	Exhausted    bool                   `json:"exhausted"`
	Progress     session.Progress       `json:"progress"`
	Distribution map[session.Rating]int `json:"distribution"`
}

// ReviewSummary is the end-of-session view.
type ReviewSummary struct {
	session.Summary[session.Rating]
	Distribution map[session.Rating]int `json:"distribution"`
}

// ReviewService drives flashcard review sessions
type ReviewService interface {
	StartSession(ctx context.Context) (*ReviewState, error)
	GetSession(ctx context.Context, sessionID string) (*ReviewState, error)
	Reveal(ctx context.Context, sessionID string) error
	Hide(ctx context.Context, sessionID string) error
	SubmitReview(ctx context.Context, sessionID string, cardID int64, quality int) (*ReviewState, error)
	Undo(ctx context.Context, sessionID string) (*ReviewState, error)
	LoadMore(ctx context.Context, sessionID string) (*ReviewState, error)
	RemoveCard(ctx context.Context, sessionID string, cardID int64) (*ReviewState, error)
	GetSummary(ctx context.Context, sessionID string) (*ReviewSummary, error)
	EndSession(ctx context.Context, sessionID string) error
}

type reviewSession struct {
	engine *session.Engine[models.CardWithNote, session.Rating]
	loaded map[int64]bool
}

type reviewService struct {
	cardRepo  repository.CardRepository
	batchSize int

	mu       sync.Mutex
	sessions map[string]*reviewSession
}

// NewReviewService creates a new ReviewService
func NewReviewService(cardRepo repository.CardRepository, batchSize int) ReviewService {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &reviewService{
		cardRepo:  cardRepo,
		batchSize: batchSize,
		sessions:  make(map[string]*reviewSession),
	}
}

func cardItemID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *reviewService) getSession(sessionID string) (*reviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("review session", sessionID)
	}
	return sess, nil
}

func (s *reviewService) state(sessionID string, sess *reviewSession) *ReviewState {
	state := &ReviewState{
		SessionID:    sessionID,
		Exhausted:    sess.engine.IsExhausted(),
		Progress:     sess.engine.Progress(),
		Distribution: session.RatingDistribution(sess.engine),
	}
	if cur, ok := sess.engine.Current(); ok {
		card := cur.Payload
		state.Current = &card
	}
	return state
}

func (s *reviewService) StartSession(ctx context.Context) (*ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review session")

	now := time.Now()
	cards, err := s.cardRepo.DueCards(ctx, now, s.batchSize)
	if err != nil {
		log.Error("failed to load due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	totalDue, err := s.cardRepo.CountDue(ctx, now)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sess := &reviewSession{
		engine: session.NewReviewEngine[models.CardWithNote](),
		loaded: make(map[int64]bool, len(cards)),
	}
	items := make([]session.WorkItem[models.CardWithNote], 0, len(cards))
	for _, card := range cards {
		items = append(items, session.WorkItem[models.CardWithNote]{ID: cardItemID(card.ID), Payload: card})
		sess.loaded[card.ID] = true
	}
	sess.engine.Initialize(items, totalDue)

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	log.Info("review session started: id=%s, loaded=%d, due=%d", sessionID, len(items), totalDue)
	return s.state(sessionID, sess), nil
}

func (s *reviewService) GetSession(ctx context.Context, sessionID string) (*ReviewState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(sessionID, sess), nil
}

func (s *reviewService) Reveal(ctx context.Context, sessionID string) error {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	sess.engine.MarkActive()
	return nil
}

func (s *reviewService) Hide(ctx context.Context, sessionID string) error {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	sess.engine.ClearActive()
	return nil
}

func (s *reviewService) SubmitReview(ctx context.Context, sessionID string, cardID int64, quality int) (*ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting review: session_id=%s, card_id=%d, quality=%d", sessionID, cardID, quality)

	if quality < 1 || quality > 4 {
		return nil, errors.NewValidationError("quality", "must be between 1 and 4")
	}

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	cur, ok := sess.engine.Current()
	if !ok {
		return nil, errors.NewValidationError("session", "queue is exhausted")
	}
	if cur.ID != cardItemID(cardID) {
		return nil, errors.NewValidationError("card_id", "is not the current card")
	}

	out := sess.engine.Record(cur.ID, session.Rating(quality))
	sess.engine.Advance()

	// Persist the schedule update and history. The in-memory session stays
	// usable even if persistence fails.
	card, err := s.cardRepo.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to get card for schedule update: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		log.Warn("card deleted mid-session: id=%d", cardID)
	} else {
		updated := srs.ApplyReview(card.Card, quality, time.Now())
		if err := s.cardRepo.Update(ctx, updated); err != nil {
			log.Error("failed to update card schedule: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if err := s.cardRepo.InsertReviewHistory(ctx, cardID, quality, out.Seconds); err != nil {
			log.Warn("failed to store review history: %v", err)
			// Don't fail the review if history storage fails.
		}
	}

	return s.state(sessionID, sess), nil
}

func (s *reviewService) Undo(ctx context.Context, sessionID string) (*ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("undoing review: session_id=%s", sessionID)

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.engine.Undo() {
		return nil, errors.NewValidationError("session", "nothing to undo")
	}

	// The persisted schedule update is left in place; the next submit for
	// this card simply applies on top of it.
	return s.state(sessionID, sess), nil
}

func (s *reviewService) LoadMore(ctx context.Context, sessionID string) (*ReviewState, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading more due cards: session_id=%s", sessionID)

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cards, err := s.cardRepo.DueCards(ctx, now, s.batchSize)
	if err != nil {
		log.Error("failed to load due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var items []session.WorkItem[models.CardWithNote]
	for _, card := range cards {
		if sess.loaded[card.ID] {
			continue
		}
		items = append(items, session.WorkItem[models.CardWithNote]{ID: cardItemID(card.ID), Payload: card})
		sess.loaded[card.ID] = true
	}
	if len(items) > 0 {
		sess.engine.Append(items)

		// Refetched cards were already inside the session's initial due
		// target, so recompute it instead of letting Append inflate it:
		// everything completed so far plus everything still due.
		totalDue, err := s.cardRepo.CountDue(ctx, now)
		if err != nil {
			log.Error("failed to count due cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
		sess.engine.SetDueCount(sess.engine.Progress().Completed + totalDue)

		log.Info("appended %d due cards to session %s", len(items), sessionID)
	}

	return s.state(sessionID, sess), nil
}

func (s *reviewService) RemoveCard(ctx context.Context, sessionID string, cardID int64) (*ReviewState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.engine.RemoveByID(cardItemID(cardID))
	delete(sess.loaded, cardID)
	return s.state(sessionID, sess), nil
}

func (s *reviewService) GetSummary(ctx context.Context, sessionID string) (*ReviewSummary, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &ReviewSummary{
		Summary:      sess.engine.Summary(),
		Distribution: session.RatingDistribution(sess.engine),
	}, nil
}

func (s *reviewService) EndSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("review session", sessionID)
	}
	sess.engine.Reset()
	log.Info("review session ended: id=%s", sessionID)
	return nil
}
