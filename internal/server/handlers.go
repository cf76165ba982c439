package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmynk/planboard/internal/auth"
	"github.com/mmynk/planboard/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "planboard",
	})
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain errors to HTTP statuses. Unrecognized errors
// become 500s with a generic message; details stay in the log.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var locked *auth.LockedOutError

	switch {
	case errors.As(err, &locked):
		s.writeError(w, http.StatusTooManyRequests, locked.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, service.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUsernameExists):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrUnknownUser):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Internal error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON parses the request body into dst, rejecting unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
