package api

import (
	"net/http"
	"strconv"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
)

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var body notePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.NoteService.CreateNote(r.Context(), body.Title, body.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.NoteFilter{Query: q.Get("q")}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	notes, total, err := s.NoteService.ListNotes(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notes": notes,
		"total": total,
	})
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.NoteService.GetNote(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body notePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.NoteService.UpdateNote(r.Context(), id, body.Title, body.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.NoteService.DeleteNote(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("note deleted via api: id=%d", id)
	respondJSON(w, http.StatusNoContent, nil)
}
