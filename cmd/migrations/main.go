package main

import (
	"context"
	"flag"
	"os"

	"gear-loadout-optimiser/internal/cli"
	"gear-loadout-optimiser/internal/db"
	"gear-loadout-optimiser/internal/env"
	_ "gear-loadout-optimiser/migrations"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

var (
	flags    = flag.NewFlagSet("migrations", flag.ExitOnError)
	dir      = flags.String("dir", ".", "directory with migration files")
	logLevel = flags.String("log-level", "info", "log level")
)

func main() {
	if err := flags.Parse(os.Args[1:]); err != nil {
		return
	}
	cli.SetLogLevel(*logLevel)

	args := flags.Args()
	if len(args) < 1 {
		flags.Usage()
		log.Fatal().Msg("usage: migrations [-dir .] <command> [args]")
	}
	command := args[0]

	environment, err := env.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get environment variables")
	}

	dbClient, err := db.CreateLoadoutDBClient(environment)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to db")
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close db")
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("Failed to set goose dialect")
	}

	log.Info().Msgf("Running migrations: %s", command)

	if err := goose.RunContext(context.Background(), command, dbClient.Conn, *dir, args[1:]...); err != nil {
		log.Fatal().Err(err).Msgf("goose %v", command)
	}
}
