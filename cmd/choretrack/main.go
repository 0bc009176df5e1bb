package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/threepeak/choretrack/internal/backup"
	"github.com/threepeak/choretrack/internal/database"
	"github.com/threepeak/choretrack/internal/logging"
	"github.com/threepeak/choretrack/internal/server"
)

func main() {
	// Best effort: running without a .env file is normal.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("CHORETRACK_LOG_LEVEL"))

	port := os.Getenv("CHORETRACK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHORETRACK_DB_PATH")
	if dbPath == "" {
		dbPath = "choretrack.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cfg := server.Config{
		InstanceID: os.Getenv("CHORETRACK_INSTANCE_ID"),
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  os.Getenv("CHORETRACK_S3_ENDPOINT"),
				Bucket:    os.Getenv("CHORETRACK_S3_BUCKET"),
				Region:    os.Getenv("CHORETRACK_S3_REGION"),
				AccessKey: os.Getenv("CHORETRACK_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("CHORETRACK_S3_SECRET_KEY"),
			},
			Interval: backupInterval(logger),
		},
	}

	srv, err := server.New(db, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	srv.BackupManager().Start(context.Background())
	defer srv.BackupManager().Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("choretrack running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// backupInterval reads CHORETRACK_BACKUP_INTERVAL as a Go duration. Empty or
// invalid values disable the schedule loop; manual backups still work.
func backupInterval(logger *slog.Logger) time.Duration {
	raw := os.Getenv("CHORETRACK_BACKUP_INTERVAL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("invalid CHORETRACK_BACKUP_INTERVAL, schedule disabled", "value", raw)
		return 0
	}
	return d
}
