package api

import (
	"net/http"
)

type exercisePayload struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	noteID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body exercisePayload
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	ex, err := s.ExerciseService.CreateExercise(r.Context(), noteID, body.Prompt, body.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	noteID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	exercises, err := s.ExerciseService.ListExercises(r.Context(), noteID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ExerciseService.DeleteExercise(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
