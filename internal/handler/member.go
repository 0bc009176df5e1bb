package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/threepeak/choretrack/internal/tracker"
	"github.com/threepeak/choretrack/internal/websocket"
)

type MemberHandler struct {
	tracker *tracker.Tracker
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewMemberHandler(t *tracker.Tracker, hub *websocket.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{tracker: t, hub: hub, logger: logger}
}

func (h *MemberHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Snapshot().Members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	member, err := h.tracker.AddMember(req.Name)
	if err != nil {
		h.logger.Error("add member failed", "error", err)
		writeTrackerError(w, err, "failed to add member")
		return
	}

	h.broadcast(websocket.NewMessage("member", "created", member.ID, nil))
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.tracker.DeleteMember(id); err != nil {
		writeTrackerError(w, err, "failed to delete member")
		return
	}

	h.broadcast(websocket.NewMessage("member", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
