package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/config"
	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/logger"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/seed"
	"github.com/Simplici0/cotizador/internal/store"
)

type server struct {
	auth  *authService
	db    *sql.DB
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	for _, warning := range cfg.Warnings {
		baseLogger.Warn(warning)
	}

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		baseLogger.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database); err != nil {
			baseLogger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		baseLogger.Fatal("failed to seed database", zap.Error(err))
	}
	if stats.Inserts > 0 {
		baseLogger.Info("seeded default settings", zap.Int("inserts", stats.Inserts))
	}

	auth, err := newAuthService(cfg.PIN, cfg.SessionSecret)
	if err != nil {
		baseLogger.Fatal("failed to init auth", zap.Error(err))
	}

	srv := &server{
		auth:  auth,
		db:    database,
		store: store.New(database),
		log:   logger.Named(baseLogger, "http"),
		now:   time.Now,
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
