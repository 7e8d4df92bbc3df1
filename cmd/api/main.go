package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gear-loadout-optimiser/internal/cli"
	"gear-loadout-optimiser/internal/db"
	"gear-loadout-optimiser/internal/env"
	"gear-loadout-optimiser/internal/jobs"
	"gear-loadout-optimiser/internal/models"
	"gear-loadout-optimiser/internal/optimizer"
	"gear-loadout-optimiser/internal/queue"
	"gear-loadout-optimiser/internal/router"

	"github.com/rs/zerolog/log"
)

func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	opts := optimizer.Options{
		Ceiling:    environment.MaxCombinations,
		MaxResults: environment.MaxResults,
	}
	jobsConfig := jobs.Config{
		Concurrency: environment.ConcurrentJobs,
		Options:     opts,
	}
	cfg := router.RouterConfig{Options: opts}

	if environment.HasDatabase() {
		dbClient, err := db.CreateLoadoutDBClient(environment)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to db")
		}
		defer func(dbClient *db.Database) {
			_ = dbClient.Close()
		}(dbClient)

		cfg.Store = models.CreatePgGearStore(dbClient.Conn)
		recorder := queue.CreatePgStatusRecorder(dbClient.Conn)
		jobsConfig.Recorder = recorder
		cfg.History = recorder
	} else {
		log.Warn().Msg("No database configured, gear inventory routes are disabled")
	}

	manager := jobs.NewManager(jobsConfig)
	cfg.Jobs = manager
	r := router.NewRouter(cfg)

	go func() {
		err := r.Start(":" + environment.APIPort)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down")
	manager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down server")
	}
}
