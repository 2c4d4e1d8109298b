package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/evaluator"
	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
	"github.com/mbruna/mindvault/internal/repository"
	"github.com/mbruna/mindvault/internal/session"
)

// PracticeState is the UI-facing snapshot of a running practice session.
type PracticeState struct {
	SessionID string                   `json:"session_id"`
	Current   *models.ExerciseWithNote `json:"current,omitempty"`
	Exhausted bool                     `json:"exhausted"`
	Progress  session.Progress         `json:"progress"`
	LastGrade *models.Evaluation       `json:"last_grade,omitempty"`
}

// PracticeSummary is the end-of-session view.
type PracticeSummary struct {
	session.Summary[models.Evaluation]
}

// PracticeService drives free-text practice sessions
type PracticeService interface {
	StartSession(ctx context.Context) (*PracticeState, error)
	GetSession(ctx context.Context, sessionID string) (*PracticeState, error)
	Reveal(ctx context.Context, sessionID string) error
	SubmitAnswer(ctx context.Context, sessionID string, exerciseID int64, answer string) (*PracticeState, error)
	SetConfidence(ctx context.Context, sessionID string, exerciseID int64, confidence float64) error
	Undo(ctx context.Context, sessionID string) (*PracticeState, error)
	GetSummary(ctx context.Context, sessionID string) (*PracticeSummary, error)
	EndSession(ctx context.Context, sessionID string) error
}

type practiceSession struct {
	engine *session.Engine[models.ExerciseWithNote, models.Evaluation]
	// Persisted history row per exercise, so a late confidence rating can be
	// written back to the right record.
	recordIDs map[int64]int64
	lastGrade *models.Evaluation
}

type practiceService struct {
	exerciseRepo repository.ExerciseRepository
	eval         evaluator.Evaluator
	batchSize    int

	mu       sync.Mutex
	sessions map[string]*practiceSession
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(exerciseRepo repository.ExerciseRepository, eval evaluator.Evaluator, batchSize int) PracticeService {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &practiceService{
		exerciseRepo: exerciseRepo,
		eval:         eval,
		batchSize:    batchSize,
		sessions:     make(map[string]*practiceSession),
	}
}

func exerciseItemID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *practiceService) getSession(sessionID string) (*practiceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("practice session", sessionID)
	}
	return sess, nil
}

func (s *practiceService) state(sessionID string, sess *practiceSession) *PracticeState {
	state := &PracticeState{
		SessionID: sessionID,
		Exhausted: sess.engine.IsExhausted(),
		Progress:  sess.engine.Progress(),
		LastGrade: sess.lastGrade,
	}
	if cur, ok := sess.engine.Current(); ok {
		ex := cur.Payload
		state.Current = &ex
	}
	return state
}

func (s *practiceService) StartSession(ctx context.Context) (*PracticeState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting practice session")

	exercises, err := s.exerciseRepo.Sample(ctx, s.batchSize)
	if err != nil {
		log.Error("failed to sample exercises: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sess := &practiceSession{
		engine:    session.NewPracticeEngine[models.ExerciseWithNote](),
		recordIDs: make(map[int64]int64),
	}
	items := make([]session.WorkItem[models.ExerciseWithNote], 0, len(exercises))
	for _, ex := range exercises {
		items = append(items, session.WorkItem[models.ExerciseWithNote]{ID: exerciseItemID(ex.ID), Payload: ex})
	}
	sess.engine.Initialize(items, 0)

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	log.Info("practice session started: id=%s, exercises=%d", sessionID, len(items))
	return s.state(sessionID, sess), nil
}

func (s *practiceService) GetSession(ctx context.Context, sessionID string) (*PracticeState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(sessionID, sess), nil
}

func (s *practiceService) Reveal(ctx context.Context, sessionID string) error {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	sess.engine.MarkActive()
	return nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, sessionID string, exerciseID int64, answer string) (*PracticeState, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: session_id=%s, exercise_id=%d", sessionID, exerciseID)

	if answer == "" {
		return nil, errors.NewValidationError("answer", "is required")
	}

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	cur, ok := sess.engine.Current()
	if !ok {
		return nil, errors.NewValidationError("session", "queue is exhausted")
	}
	if cur.ID != exerciseItemID(exerciseID) {
		return nil, errors.NewValidationError("exercise_id", "is not the current exercise")
	}

	ex := cur.Payload
	grade, err := s.eval.Evaluate(ctx, ex.Prompt, ex.Answer, answer)
	if err != nil {
		log.Error("evaluation failed: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := sess.engine.Record(cur.ID, grade)
	sess.engine.Advance()
	sess.lastGrade = &grade

	recordID, err := s.exerciseRepo.InsertPracticeHistory(ctx, models.PracticeRecord{
		ExerciseID:  exerciseID,
		Answer:      answer,
		Correct:     grade.Correct,
		Quality:     grade.Quality,
		Feedback:    grade.Feedback,
		TimeSeconds: out.Seconds,
		PracticedAt: out.RecordedAt,
	})
	if err != nil {
		log.Warn("failed to store practice history: %v", err)
		// Don't fail the submit if history storage fails.
	} else {
		sess.recordIDs[exerciseID] = recordID
	}

	return s.state(sessionID, sess), nil
}

func (s *practiceService) SetConfidence(ctx context.Context, sessionID string, exerciseID int64, confidence float64) error {
	log := logger.FromContext(ctx)
	log.Debug("setting confidence: session_id=%s, exercise_id=%d, confidence=%.2f", sessionID, exerciseID, confidence)

	if confidence < 0 || confidence > 1 {
		return errors.NewValidationError("confidence", "must be between 0 and 1")
	}

	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}

	sess.engine.AttachLateField(exerciseItemID(exerciseID), session.ConfidenceField, confidence)

	recordID, ok := sess.recordIDs[exerciseID]
	if !ok {
		// No persisted record to annotate. Matches the engine's silent no-op
		// for unknown items.
		return nil
	}
	if err := s.exerciseRepo.UpdatePracticeConfidence(ctx, recordID, confidence); err != nil {
		log.Warn("failed to store confidence: %v", err)
	}
	return nil
}

func (s *practiceService) Undo(ctx context.Context, sessionID string) (*PracticeState, error) {
	log := logger.FromContext(ctx)
	log.Debug("undoing answer: session_id=%s", sessionID)

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.engine.Undo() {
		return nil, errors.NewValidationError("session", "nothing to undo")
	}
	sess.lastGrade = nil

	return s.state(sessionID, sess), nil
}

func (s *practiceService) GetSummary(ctx context.Context, sessionID string) (*PracticeSummary, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return &PracticeSummary{Summary: sess.engine.Summary()}, nil
}

func (s *practiceService) EndSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("practice session", sessionID)
	}
	sess.engine.Reset()
	log.Info("practice session ended: id=%s", sessionID)
	return nil
}
