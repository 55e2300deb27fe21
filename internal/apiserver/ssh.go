package apiserver

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type (
	createSSHPairRequest struct {
		Name      string `json:"name" validate:"required,max=128"`
		PublicKey string `json:"publicKey" validate:"required"`
	}

	generateSSHPairRequest struct {
		Name string `json:"name" validate:"required,max=128"`
	}
)

func (s *Server) listSSHPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.sshService.GetPairs(r.Context(), subjectFromContext(r.Context()), chi.URLParam(r, "service"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]*sshPairView, len(pairs))
	for index, pair := range pairs {
		views[index] = adaptSSHPair(pair, false)
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) createSSHPair(w http.ResponseWriter, r *http.Request) {
	var req createSSHPairRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pair, err := s.sshService.CreatePair(r.Context(), types.SSHPairCreateOptions{
		Owner:     subjectFromContext(r.Context()),
		Service:   chi.URLParam(r, "service"),
		Name:      req.Name,
		PublicKey: &req.PublicKey,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, adaptSSHPair(pair, false))
}

func (s *Server) generateSSHPair(w http.ResponseWriter, r *http.Request) {
	var req generateSSHPairRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pair, err := s.sshService.GeneratePair(r.Context(), subjectFromContext(r.Context()), chi.URLParam(r, "service"), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, adaptSSHPair(pair, true))
}

func (s *Server) deleteSSHPair(w http.ResponseWriter, r *http.Request) {
	err := s.sshService.DeletePair(r.Context(), subjectFromContext(r.Context()), chi.URLParam(r, "service"), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
