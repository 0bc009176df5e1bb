// Package handler implements the JSON API. Handlers validate input, call into
// the tracker or the statistics engines, broadcast change notifications, and
// write JSON responses.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/threepeak/choretrack/internal/tracker"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeTrackerError maps tracker errors onto HTTP statuses.
func writeTrackerError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tracker.ErrNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
