package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbruna/mindvault/internal/logger"
)

type practiceAnswerPayload struct {
	ExerciseID int64  `json:"exercise_id"`
	Answer     string `json:"answer"`
}

type confidencePayload struct {
	ExerciseID int64   `json:"exercise_id"`
	Confidence float64 `json:"confidence"`
}

func (s *Server) handleStartPracticeSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.PracticeService.StartSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetPracticeSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.PracticeService.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleRevealExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.PracticeService.Reveal(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body practiceAnswerPayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.PracticeService.SubmitAnswer(r.Context(), sessionID, body.ExerciseID, body.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("answer submitted: session_id=%s, exercise_id=%d", sessionID, body.ExerciseID)
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleSetConfidence(w http.ResponseWriter, r *http.Request) {
	var body confidencePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := s.PracticeService.SetConfidence(r.Context(), sessionID, body.ExerciseID, body.Confidence); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUndoAnswer(w http.ResponseWriter, r *http.Request) {
	state, err := s.PracticeService.Undo(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handlePracticeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.PracticeService.GetSummary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleEndPracticeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.PracticeService.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
