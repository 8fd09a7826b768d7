package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/npslab/npsboard/internal/api"
	"github.com/npslab/npsboard/internal/config"
	"github.com/npslab/npsboard/internal/db"
	"github.com/npslab/npsboard/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "npsboard")
	slog.SetDefault(logger)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	rt := api.NewRouter(cfg, store)
	mux := http.NewServeMux()
	rt.Register(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "name": "npsboard API"})
	})

	handler := middleware.SecureHeaders(
		middleware.CORS(
			middleware.RequestID(
				middleware.Logging(
					rt.Tokens().WithAuth(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctrlc
	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openStore selects SQLite when a database path is configured, otherwise an
// in-memory store that vanishes on exit.
func openStore(cfg config.Config) (api.Store, func(), error) {
	if cfg.DBPath == "" {
		slog.Warn("NPSBOARD_DB_PATH not set, using in-memory store (data is not persisted)")
		return api.NewMemoryStore(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.ToSlash(cfg.DBPath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.RunMigrations(sqliteDB); err != nil {
		sqliteDB.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	store, err := db.NewSQLiteStore(sqliteDB)
	if err != nil {
		sqliteDB.Close()
		return nil, nil, fmt.Errorf("init sqlite store: %w", err)
	}
	closeFn := func() {
		if err := sqliteDB.Close(); err != nil {
			slog.Warn("close sqlite", "error", err)
		}
	}
	return store, closeFn, nil
}
