package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gear-loadout-optimiser/internal/cli"
	"gear-loadout-optimiser/internal/db"
	"gear-loadout-optimiser/internal/env"
	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/jobs"
	"gear-loadout-optimiser/internal/models"
	"gear-loadout-optimiser/internal/optimizer"
	"gear-loadout-optimiser/internal/profile"

	"github.com/rs/zerolog/log"
)

// optimises the gear of an exported profile, or with `--from-db` the stored inventory
// scored against the profile's character sheet
func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	if flags.Profile == "" {
		log.Fatal().Msg("--profile=<path> is required")
	}

	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	p, err := profile.Load(flags.Profile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load profile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := p.Request(flags.Display)
	if flags.FromDatabase {
		if err := loadStoredGear(ctx, environment, &req); err != nil {
			log.Fatal().Err(err).Msg("Failed to load stored gear")
		}
	}
	for _, slot := range flags.Slots {
		req.Constraints.SlotsToOptimize = append(req.Constraints.SlotsToOptimize, gear.Slot(strings.TrimSpace(slot)))
	}

	opts := optimizer.Options{
		Ceiling:    environment.MaxCombinations,
		MaxResults: environment.MaxResults,
	}

	var computation *optimizer.Computation
	if flags.Async {
		computation, err = runAsJob(ctx, req, opts)
	} else {
		opts.Progress = logProgress
		computation, err = optimizer.Optimize(ctx, req, opts)
	}
	if optimizer.IsCancelled(err) {
		log.Info().Msg("Optimisation cancelled")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Optimisation failed")
	}

	if flags.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(computation); err != nil {
			log.Fatal().Err(err).Msg("Failed to write results")
		}
		return
	}
	printResults(computation)
}

func loadStoredGear(ctx context.Context, environment env.Env, req *optimizer.Request) error {
	dbClient, err := db.CreateLoadoutDBClient(environment)
	if err != nil {
		return err
	}
	defer func(dbClient *db.Database) {
		_ = dbClient.Close()
	}(dbClient)

	store := models.CreatePgGearStore(dbClient.Conn)
	pool, err := store.Items(ctx)
	if err != nil {
		return err
	}
	loadout, err := store.Loadout(ctx)
	if err != nil {
		return err
	}

	log.Info().Msgf("Loaded %d stored gear items", len(pool))
	req.Pool = pool
	req.Equipped = loadout
	return nil
}

func runAsJob(ctx context.Context, req optimizer.Request, opts optimizer.Options) (*optimizer.Computation, error) {
	manager := jobs.NewManager(jobs.Config{Concurrency: 1, Options: opts})
	defer manager.Shutdown()

	jobID, err := manager.Start("", req, func(event jobs.Event) {
		if event.Type == jobs.EventProgress {
			logProgress(event.Current, event.Total)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("Started job %s", jobID)

	snapshot, err := manager.Wait(ctx, jobID)
	if err != nil {
		_ = manager.Cancel(jobID)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", optimizer.ErrCancelled, err)
		}
		return nil, err
	}

	switch snapshot.Status {
	case jobs.StatusCompleted:
		return snapshot.Result, nil
	case jobs.StatusCancelled:
		return nil, optimizer.ErrCancelled
	default:
		return nil, errors.New(snapshot.Error)
	}
}

func logProgress(current int64, total int64) {
	if total == 0 {
		return
	}
	log.Info().Msgf("Evaluated %d/%d combinations (%.0f%%)", current, total, float64(current)/float64(total)*100)
}

func printResults(computation *optimizer.Computation) {
	log.Info().Msgf("Base damage %.1f, equipped %.1f, %d combinations searched",
		computation.BaseDamage, computation.BaselineWithGear, computation.TotalCombos)

	for i, result := range computation.Results {
		names := make([]string, 0, len(gear.Slots))
		for _, slot := range gear.Slots {
			item, ok := result.Selection[slot]
			if !ok {
				continue
			}
			name := item.Name
			if name == "" {
				name = item.ID
			}
			names = append(names, slot.Label()+": "+name)
		}
		log.Info().Msgf("#%d %.1f (%+.2f%%) %s", i+1, result.Damage, result.PercentGain, strings.Join(names, ", "))
	}
}
