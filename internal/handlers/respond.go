package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusForError maps the error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var ve *apperrors.ErrValidation
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrMissingPreload):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
