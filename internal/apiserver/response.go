package apiserver

import (
	"encoding/json"
	"errors"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/expected-so/canonicallog"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		s.log.Error("failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		canonicallog.LogAttr(r.Context(), slog.Any("error", err))
		s.writeJSON(w, status, errorResponse{Message: http.StatusText(status)})
		return
	}

	s.writeJSON(w, status, errorResponse{Message: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidKeyFormat),
		errors.Is(err, types.ErrInvalidPublicKey),
		errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrWorkspaceNotFound),
		errors.Is(err, types.ErrMachineNotFound),
		errors.Is(err, types.ErrAgentCheckerNotFound),
		errors.Is(err, types.ErrSSHPairNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrSSHPairAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
