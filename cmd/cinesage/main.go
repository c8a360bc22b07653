package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hassaancode/CineSage/internal/api"
	"github.com/hassaancode/CineSage/internal/config"
	"github.com/hassaancode/CineSage/internal/database"
	"github.com/hassaancode/CineSage/internal/logger"
	"github.com/hassaancode/CineSage/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// .env is optional, used for local development credentials.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Msg("starting CineSage")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Msg("running database migrations")
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	server := api.NewServer(db.Conn(), cfg, log.Logger)

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}

	sessionTTL := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute
	if err := sched.RegisterTask(scheduler.TaskConfig{
		ID:   "session-prune",
		Name: "Session Pruning",
		Cron: cfg.Sessions.PruneCron,
		Func: func(ctx context.Context) error {
			removed := server.Recommendations().Sessions().Prune(sessionTTL)
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("pruned stale sessions")
			}
			return nil
		},
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register session pruning task")
	}

	if err := sched.RegisterTask(scheduler.TaskConfig{
		ID:         "genre-warm",
		Name:       "Genre Map Warmup",
		Cron:       "0 4 * * *",
		RunOnStart: true,
		Func: func(ctx context.Context) error {
			server.Catalog().GenreMap(ctx)
			return nil
		},
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register genre warmup task")
	}

	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	go func() {
		addr := cfg.Server.Address()
		log.Info().Str("address", addr).Msg("HTTP server listening")
		if err := server.Start(addr); err != nil {
			log.Info().Msg("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
