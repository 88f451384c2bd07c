package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teamsalmon/transponder/internal/models"
)

// writeResult wraps a payload in the {"result": ...} envelope the
// client script expects and writes it with status 200.
func writeResult(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": payload})
}

// writeError converts an application error into the
// {"result":{"error": msg}} envelope. Application errors never change
// the HTTP status; only unmapped routes 404.
func writeError(w http.ResponseWriter, err error) {
	writeResult(w, map[string]string{"error": errorMessage(err)})
}

// errorMessage maps service error kinds to client-facing messages.
// Anything unrecognized is reported generically so store internals
// never leak.
func errorMessage(err error) string {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	switch {
	case errors.Is(err, models.ErrAlreadyExists),
		errors.Is(err, models.ErrDuplicateResource),
		errors.Is(err, models.ErrUnknownUser),
		errors.Is(err, models.ErrBadPassword),
		errors.Is(err, models.ErrNotFound):
		return err.Error()
	default:
		return "internal error"
	}
}
