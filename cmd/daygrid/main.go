package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/daygrid/internal/config"
	"github.com/gosuda/daygrid/internal/holiday"
	"github.com/gosuda/daygrid/internal/persist"
	"github.com/gosuda/daygrid/internal/persist/memory"
	redisadapter "github.com/gosuda/daygrid/internal/persist/redis"
	"github.com/gosuda/daygrid/internal/server"
	"github.com/gosuda/daygrid/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("DAYGRID_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("DAYGRID_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Pick the snapshot backend: Redis when configured, otherwise an
	// in-process slot (no durability, no cross-instance sync).
	var adapter persist.Adapter
	if cfg.Redis.Addr != "" {
		ra, raErr := redisadapter.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Store.Key)
		if raErr != nil {
			return raErr
		}
		defer ra.Close()
		adapter = ra
		log.Info().Str("addr", cfg.Redis.Addr).Str("key", cfg.Store.Key).Msg("using redis snapshot backend")
	} else {
		adapter = memory.NewSlot().Attach()
		log.Info().Msg("using in-process snapshot backend")
	}

	// Seed the task store from the persisted snapshot.
	taskStore, err := store.New(ctx, adapter)
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Follow snapshot writes made by other instances.
	unsub, err := taskStore.StartSync(ctx)
	if err != nil {
		return err
	}
	defer unsub()

	holidays := holiday.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.Timeout, cfg.Holiday.CacheTTL)

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, taskStore, holidays)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
