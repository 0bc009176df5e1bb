package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/threepeak/choretrack/internal/model"
	"github.com/threepeak/choretrack/internal/tracker"
	"github.com/threepeak/choretrack/internal/websocket"
)

type LogHandler struct {
	tracker *tracker.Tracker
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewLogHandler(t *tracker.Tracker, hub *websocket.Hub, logger *slog.Logger) *LogHandler {
	return &LogHandler{tracker: t, hub: hub, logger: logger}
}

func (h *LogHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Snapshot().Logs)
}

// Create records a completion. An omitted timestamp means "now"; a provided
// one marks the entry as manually backdated. The timestamp field accepts the
// same loose formats as import payloads.
func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChoreID   string           `json:"choreId"`
		MemberID  string           `json:"memberId"`
		Timestamp *model.Timestamp `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ChoreID == "" || req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "choreId and memberId are required")
		return
	}

	var at *time.Time
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		at = &req.Timestamp.Time
	}

	log, err := h.tracker.LogChore(req.ChoreID, req.MemberID, at)
	if err != nil {
		h.logger.Error("log chore failed", "error", err)
		writeTrackerError(w, err, "failed to log chore")
		return
	}

	h.broadcast(websocket.NewMessage("log", "created", log.ID, map[string]any{
		"choreId":  log.ChoreID,
		"memberId": log.MemberID,
	}))
	writeJSON(w, http.StatusCreated, log)
}

func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.tracker.DeleteLog(id); err != nil {
		writeTrackerError(w, err, "failed to delete log")
		return
	}

	h.broadcast(websocket.NewMessage("log", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
