package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/threepeak/choretrack/internal/stats"
	"github.com/threepeak/choretrack/internal/timeutil"
	"github.com/threepeak/choretrack/internal/tracker"
	"github.com/threepeak/choretrack/internal/websocket"
)

type ChoreHandler struct {
	tracker *tracker.Tracker
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewChoreHandler(t *tracker.Tracker, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{tracker: t, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Snapshot().Chores)
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	chore, err := h.tracker.AddChore(req.Name)
	if err != nil {
		h.logger.Error("add chore failed", "error", err)
		writeTrackerError(w, err, "failed to add chore")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "created", chore.ID, nil))
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.tracker.DeleteChore(id); err != nil {
		writeTrackerError(w, err, "failed to delete chore")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the per-chore breakdown plus a human-friendly "last done"
// label. Unknown chore ids yield empty stats rather than 404 so a freshly
// deleted chore does not break a stale dashboard.
func (h *ChoreHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap := h.tracker.Snapshot()

	result := stats.ChoreStats(id, snap.Logs, snap.Members)

	lastDone := "Never"
	for _, log := range snap.Logs {
		if log.ChoreID == id {
			lastDone = timeutil.RelativeTime(log.Timestamp.Time, time.Now())
			break
		}
	}

	writeJSON(w, http.StatusOK, struct {
		stats.ChoreResult
		LastDone string `json:"lastDone"`
	}{ChoreResult: result, LastDone: lastDone})
}
