package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.StatsService.GetOverview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) handleDailyReviewStats(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	stats, err := s.StatsService.GetDailyReviewStats(r.Context(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"daily": stats})
}

func (s *Server) handleQualityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetQualityStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"quality": stats})
}

func (s *Server) handlePracticeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetPracticeStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
