package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindly-app/duel-engine/internal/api"
	"github.com/mindly-app/duel-engine/internal/bank"
	"github.com/mindly-app/duel-engine/internal/cleanup"
	"github.com/mindly-app/duel-engine/internal/config"
	"github.com/mindly-app/duel-engine/internal/duel"
	"github.com/mindly-app/duel-engine/internal/opponent"
	"github.com/mindly-app/duel-engine/internal/quiz"
	"github.com/mindly-app/duel-engine/internal/storage"
	"github.com/mindly-app/duel-engine/internal/trivia"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting duel-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Load the fallback question bank
	questionBank := bank.New()
	if cfg.Bank.Dir != "" {
		if err := questionBank.LoadFromDir(cfg.Bank.Dir); err != nil {
			slog.Warn("failed to load question packs", "dir", cfg.Bank.Dir, "error", err)
		}
	}
	slog.Info("question bank ready", "questions", questionBank.Size())

	// Optional Redis cache in front of the trivia provider
	var cache *trivia.Cache
	if cfg.Redis.Enabled {
		cache, err = trivia.NewCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			slog.Warn("trivia cache unavailable, continuing without it", "error", err)
			cache = nil
		}
	}

	// Question assembly pipeline
	source := trivia.NewClient(cfg.Trivia, cache, nil)
	assembler := quiz.NewAssembler(source, questionBank, nil)
	simulator := opponent.NewSimulator(nil)

	// Initialize duel manager
	manager := duel.NewManager(cfg.Duel, assembler, simulator, repo)

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(manager, cfg.Cleanup.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, manager, repo)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if cache != nil {
		if err := cache.Close(); err != nil {
			slog.Warn("trivia cache close error", "error", err)
		}
	}

	// Close manager (flushes repository connection)
	if err := manager.Close(); err != nil {
		slog.Error("manager close error", "error", err)
	}

	slog.Info("duel-engine stopped")
}
