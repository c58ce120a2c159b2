package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	webAdapter "ledgerdocs/internal/adapters/web"
	"ledgerdocs/internal/app"
	"ledgerdocs/internal/config"
	"ledgerdocs/internal/core"
	"ledgerdocs/internal/db"
	"ledgerdocs/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slogger := logger.New(cfg)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		slogger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
		slogger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	documents := core.NewDocumentStore(pool)
	journal := core.NewJournalEntryStore(pool)
	statements := core.NewStatementStore(pool)
	users := core.NewUserStore(pool)
	generator := core.NewGenerator()

	svc := app.NewService(documents, journal, statements, users, generator, slogger)
	handler := webAdapter.NewHandler(svc, cfg.Server.AllowedOrigins, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, slogger)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slogger.Info("server starting", "port", cfg.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slogger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
