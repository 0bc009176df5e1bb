// Package server wires the handlers, tracker, and hub into an HTTP router.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/threepeak/choretrack/internal/backup"
	"github.com/threepeak/choretrack/internal/github"
	"github.com/threepeak/choretrack/internal/handler"
	"github.com/threepeak/choretrack/internal/middleware"
	"github.com/threepeak/choretrack/internal/store"
	"github.com/threepeak/choretrack/internal/tracker"
	ws "github.com/threepeak/choretrack/internal/websocket"
)

// Config holds server construction options.
type Config struct {
	InstanceID string
	Backup     backup.Config
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	tracker       *tracker.Tracker
	backupManager *backup.Manager

	memberH   *handler.MemberHandler
	choreH    *handler.ChoreHandler
	logH      *handler.LogHandler
	statsH    *handler.StatsHandler
	snapshotH *handler.SnapshotHandler
	backupH   *handler.BackupHandler

	logger *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	snapshotStore := store.NewSnapshotStore(db)
	trk, err := tracker.New(snapshotStore, cfg.InstanceID, logger.With("component", "tracker"))
	if err != nil {
		return nil, fmt.Errorf("init tracker: %w", err)
	}

	backupMgr := backup.NewManager(cfg.Backup, trk, logger.With("component", "backup"))
	githubClient := github.NewClient(logger.With("component", "github"))

	return &Server{
		db:            db,
		hub:           hub,
		tracker:       trk,
		backupManager: backupMgr,
		memberH:       handler.NewMemberHandler(trk, hub, logger.With("component", "member")),
		choreH:        handler.NewChoreHandler(trk, hub, logger.With("component", "chore")),
		logH:          handler.NewLogHandler(trk, hub, logger.With("component", "log")),
		statsH:        handler.NewStatsHandler(trk),
		snapshotH:     handler.NewSnapshotHandler(trk, snapshotStore, githubClient, hub, logger.With("component", "snapshot")),
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup")),
		logger:        logger,
	}, nil
}

// Tracker returns the tracker, mostly for tests.
func (s *Server) Tracker() *tracker.Tracker {
	return s.tracker
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)

	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("GET /api/chores/{id}/stats", s.choreH.Stats)

	mux.HandleFunc("GET /api/logs", s.logH.List)
	mux.HandleFunc("POST /api/logs", s.logH.Create)
	mux.HandleFunc("DELETE /api/logs/{id}", s.logH.Delete)

	mux.HandleFunc("GET /api/stats/hall-of-fame", s.statsH.HallOfFame)
	mux.HandleFunc("GET /api/dashboard", s.statsH.Dashboard)

	mux.HandleFunc("GET /api/export", s.snapshotH.Export)
	mux.HandleFunc("POST /api/import", s.snapshotH.Import)
	mux.HandleFunc("GET /api/instance", s.snapshotH.Instance)
	mux.HandleFunc("PUT /api/instance", s.snapshotH.SwitchInstance)
	mux.HandleFunc("POST /api/github/upload", s.snapshotH.GithubUpload)

	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backup/now", s.backupH.RunNow)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
