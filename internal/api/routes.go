package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/ready", s.handleReady)

	r.Route("/api/notes", func(r chi.Router) {
		r.Post("/", s.handleCreateNote)
		r.Get("/", s.handleListNotes)
		r.Get("/{id}", s.handleGetNote)
		r.Put("/{id}", s.handleUpdateNote)
		r.Delete("/{id}", s.handleDeleteNote)
		r.Get("/{id}/neighbors", s.handleGetNeighbors)
		r.Post("/{id}/cards", s.handleCreateCard)
		r.Get("/{id}/cards", s.handleListCards)
		r.Post("/{id}/exercises", s.handleCreateExercise)
		r.Get("/{id}/exercises", s.handleListExercises)
	})

	r.Get("/api/graph", s.handleGetGraph)
	r.Delete("/api/cards/{id}", s.handleDeleteCard)
	r.Delete("/api/exercises/{id}", s.handleDeleteExercise)

	r.Route("/api/review/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartReviewSession)
		r.Get("/{sessionID}", s.handleGetReviewSession)
		r.Post("/{sessionID}/reveal", s.handleRevealCard)
		r.Post("/{sessionID}/hide", s.handleHideCard)
		r.Post("/{sessionID}/reviews", s.handleSubmitReview)
		r.Post("/{sessionID}/undo", s.handleUndoReview)
		r.Post("/{sessionID}/more", s.handleLoadMoreCards)
		r.Delete("/{sessionID}/cards/{cardID}", s.handleRemoveSessionCard)
		r.Get("/{sessionID}/summary", s.handleReviewSummary)
		r.Delete("/{sessionID}", s.handleEndReviewSession)
	})

	r.Route("/api/practice/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartPracticeSession)
		r.Get("/{sessionID}", s.handleGetPracticeSession)
		r.Post("/{sessionID}/reveal", s.handleRevealExercise)
		r.Post("/{sessionID}/answers", s.handleSubmitAnswer)
		r.Post("/{sessionID}/confidence", s.handleSetConfidence)
		r.Post("/{sessionID}/undo", s.handleUndoAnswer)
		r.Get("/{sessionID}/summary", s.handlePracticeSummary)
		r.Delete("/{sessionID}", s.handleEndPracticeSession)
	})

	r.Route("/api/stats", func(r chi.Router) {
		r.Get("/overview", s.handleStatsOverview)
		r.Get("/daily", s.handleDailyReviewStats)
		r.Get("/quality", s.handleQualityStats)
		r.Get("/practice", s.handlePracticeStats)
	})

	return r
}
