package main

import (
	"context"

	"gear-loadout-optimiser/internal/cli"
	"gear-loadout-optimiser/internal/db"
	"gear-loadout-optimiser/internal/env"
	"gear-loadout-optimiser/internal/models"
	"gear-loadout-optimiser/internal/profile"

	"github.com/rs/zerolog/log"
)

// imports the gear of an exported profile into postgres
// use `--purge` to clear the stored inventory first
func main() {
	flags := cli.GetFlags()
	cli.SetLogLevel(flags.LogLevel)

	if flags.Profile == "" {
		log.Fatal().Msg("--profile=<path> is required")
	}

	e, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get environment variables")
	}

	dbClient, err := db.CreateLoadoutDBClient(e)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func(dbClient *db.Database) {
		_ = dbClient.Close()
	}(dbClient)

	if cli.HasFlag("--purge") {
		log.Debug().Msg("Purging stored gear.")
		if err := models.Purge(dbClient.Conn); err != nil {
			log.Fatal().Err(err).Msg("failed to purge stored gear.")
		}
		log.Debug().Msg("Stored gear purged.")
	}

	p, err := profile.Load(flags.Profile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load profile.")
	}

	items := p.StorableItems()
	log.Info().Msgf("Importing %d gear items.", len(items))
	store := models.CreatePgGearStore(dbClient.Conn)
	if err := store.Import(context.Background(), items, p.Equipped); err != nil {
		log.Fatal().Err(err).Msg("failed to import gear.")
	}
	log.Info().Msgf("Gear imported OK with %d warnings.", len(p.Warnings))
}
