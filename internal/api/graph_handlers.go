package api

import (
	"net/http"
)

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := s.GraphService.GetGraph(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, graph)
}

func (s *Server) handleGetNeighbors(w http.ResponseWriter, r *http.Request) {
	noteID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	neighbors, err := s.GraphService.GetNeighbors(r.Context(), noteID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"neighbors": neighbors})
}
