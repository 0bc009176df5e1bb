package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/threepeak/choretrack/internal/github"
	"github.com/threepeak/choretrack/internal/store"
	"github.com/threepeak/choretrack/internal/tracker"
	"github.com/threepeak/choretrack/internal/websocket"
)

// importSizeLimit bounds import payloads; a household snapshot is small.
const importSizeLimit = 16 << 20

type SnapshotHandler struct {
	tracker *tracker.Tracker
	store   *store.SnapshotStore
	github  *github.Client
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewSnapshotHandler(t *tracker.Tracker, st *store.SnapshotStore, gh *github.Client, hub *websocket.Hub, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{tracker: t, store: st, github: gh, hub: hub, logger: logger}
}

func (h *SnapshotHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// Export streams the full snapshot as a downloadable JSON document.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.tracker.ExportJSON()
	if err != nil {
		h.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="chore_tracker_backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the whole snapshot. A malformed payload is rejected and the
// current data stays untouched.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, importSizeLimit))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.tracker.ImportJSON(data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid backup file: "+err.Error())
		return
	}

	h.broadcast(websocket.NewMessage("snapshot", "imported", "", nil))

	snap := h.tracker.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "imported",
		"members": len(snap.Members),
		"chores":  len(snap.Chores),
		"logs":    len(snap.Logs),
	})
}

// Instance reports the active instance id and all known ones.
func (h *SnapshotHandler) Instance(w http.ResponseWriter, r *http.Request) {
	instances, err := h.store.ListInstances()
	if err != nil {
		h.logger.Error("list instances failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list instances")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active":    h.tracker.InstanceID(),
		"instances": instances,
	})
}

// SwitchInstance loads another instance's snapshot. Unknown ids start empty.
func (h *SnapshotHandler) SwitchInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.tracker.SetInstance(req.ID); err != nil {
		h.logger.Error("switch instance failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to switch instance")
		return
	}

	h.broadcast(websocket.NewMessage("snapshot", "switched", "", map[string]any{
		"instanceId": h.tracker.InstanceID(),
	}))
	writeJSON(w, http.StatusOK, map[string]string{"active": h.tracker.InstanceID()})
}

// GithubUpload pushes the current snapshot to a GitHub repository. Stage
// failures surface as errors; per-file failures come back in the result.
func (h *SnapshotHandler) GithubUpload(w http.ResponseWriter, r *http.Request) {
	var cfg github.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	data, err := h.tracker.ExportJSON()
	if err != nil {
		h.logger.Error("export for upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export data")
		return
	}

	result, err := h.github.UploadSnapshot(r.Context(), cfg, data)
	if err != nil {
		h.logger.Error("github upload failed", "error", err)
		writeError(w, http.StatusBadGateway, "upload failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
