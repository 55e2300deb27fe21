package apiserver

import (
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
)

func (s *Server) getAgentHealth(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentId")
	state, err := s.healthService.Check(r.Context(), subjectFromContext(r.Context()), chi.URLParam(r, "key"), agentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if legacy, _ := strconv.ParseBool(r.URL.Query().Get("legacy")); legacy {
		s.writeJSON(w, http.StatusOK, state.Legacy(agentID))
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) getAllAgentsHealth(w http.ResponseWriter, r *http.Request) {
	state, err := s.healthService.CheckAll(r.Context(), subjectFromContext(r.Context()), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, state)
}
