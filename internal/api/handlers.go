package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mbruna/mindvault/internal/db"
	"github.com/mbruna/mindvault/internal/errors"
	"github.com/mbruna/mindvault/internal/services"
)

type Server struct {
	DB              *db.DB
	NoteService     services.NoteService
	GraphService    services.GraphService
	CardService     services.CardService
	ExerciseService services.ExerciseService
	ReviewService   services.ReviewService
	PracticeService services.PracticeService
	StatsService    services.StatsService
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
