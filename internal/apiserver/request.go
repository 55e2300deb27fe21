package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errInvalidRequest = errors.New("invalid request")

const maxRequestBytes = 1 << 20

func (s *Server) decodeRequest(r *http.Request, value any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(value); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	if err := s.validate.Struct(value); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return nil
}
