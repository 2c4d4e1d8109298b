package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbruna/mindvault/internal/logger"
)

type reviewSubmitPayload struct {
	CardID  int64 `json:"card_id"`
	Quality int   `json:"quality"`
}

func (s *Server) handleStartReviewSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.ReviewService.StartSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetReviewSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.ReviewService.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleRevealCard(w http.ResponseWriter, r *http.Request) {
	if err := s.ReviewService.Reveal(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleHideCard(w http.ResponseWriter, r *http.Request) {
	if err := s.ReviewService.Hide(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body reviewSubmitPayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.ReviewService.SubmitReview(r.Context(), sessionID, body.CardID, body.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("review submitted: session_id=%s, card_id=%d, quality=%d", sessionID, body.CardID, body.Quality)
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleUndoReview(w http.ResponseWriter, r *http.Request) {
	state, err := s.ReviewService.Undo(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleLoadMoreCards(w http.ResponseWriter, r *http.Request) {
	state, err := s.ReviewService.LoadMore(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleRemoveSessionCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := idParam(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.ReviewService.RemoveCard(r.Context(), chi.URLParam(r, "sessionID"), cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReviewSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ReviewService.GetSummary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleEndReviewSession(w http.ResponseWriter, r *http.Request) {
	if err := s.ReviewService.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
