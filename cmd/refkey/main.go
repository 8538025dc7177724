package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	jsonfileadapter "github.com/efisher/refkey/internal/adapter/driven/jsonfile"
	sqliteadapter "github.com/efisher/refkey/internal/adapter/driven/sqlite"
	httphandler "github.com/efisher/refkey/internal/adapter/driving/http"
	"github.com/efisher/refkey/internal/application"
	"github.com/efisher/refkey/internal/config"
	"github.com/efisher/refkey/internal/domain/port/driven"
	"github.com/efisher/refkey/internal/token"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"history_backend", cfg.HistoryBackend,
		"token_length", cfg.TokenLength,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode). The settings
	// store always lives here; history may too, depending on the backend.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := db.Migrate(); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	settingsStore := sqliteadapter.NewSettingsRepo(db)

	var historyStore driven.HistoryStore
	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		historyStore = sqliteadapter.NewHistoryRepo(db)
	default:
		historyStore = jsonfileadapter.NewHistoryRepo(cfg.HistoryPath)
	}
	slog.Info("history store wired", "backend", cfg.HistoryBackend)

	// 6. Create application service.
	deriver, err := token.NewDeriver(cfg.Secret, cfg.TokenLength)
	if err != nil {
		return err
	}
	issueSvc := application.NewIssueService(deriver, historyStore, settingsStore, cfg.MailtoRecipient)

	// 7. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(issueSvc, slog.Default())
	handler := httphandler.NewServeMux(apiHandler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 8. Log startup complete.
	slog.Info("refkey started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
