package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gear-loadout-optimiser/internal/helpers"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxCombinations = 200_000
	DefaultMaxResults      = 10_000
	DefaultAPIPort         = "8080"
)

type Env struct {
	PgHost     string
	PgPort     string
	PgUser     string
	PgPassword string `json:"-"`
	PgName     string

	MaxCombinations int64
	MaxResults      int
	ConcurrentJobs  int64
	APIPort         string
}

// HasDatabase reports whether enough Postgres settings are present to connect.
func (e Env) HasDatabase() bool {
	return e.PgHost != "" && e.PgName != ""
}

// Get loads .env from the project root, if present, and reads the environment.
func Get() (Env, error) {
	if err := loadDotEnv(); err != nil {
		return Env{}, err
	}

	env := Env{
		PgHost:     os.Getenv("POSTGRES_HOST"),
		PgPort:     os.Getenv("POSTGRES_PORT"),
		PgUser:     os.Getenv("POSTGRES_USER"),
		PgPassword: os.Getenv("POSTGRES_PASSWORD"),
		PgName:     os.Getenv("POSTGRES_DB"),
		APIPort:    getOr("API_PORT", DefaultAPIPort),
	}

	var err error
	env.MaxCombinations, err = getInt64("OPTIMISER_MAX_COMBINATIONS", DefaultMaxCombinations)
	if err != nil {
		return Env{}, err
	}
	maxResults, err := getInt64("OPTIMISER_MAX_RESULTS", DefaultMaxResults)
	if err != nil {
		return Env{}, err
	}
	env.MaxResults = int(maxResults)
	env.ConcurrentJobs, err = getInt64("OPTIMISER_CONCURRENT_JOBS", int64(runtime.NumCPU()))
	if err != nil {
		return Env{}, err
	}

	log.Info().Interface("env", env).Msg("Environment variables")

	return env, nil
}

func loadDotEnv() error {
	projectRoot, err := helpers.GetProjectRoot()
	if err != nil {
		log.Debug().Err(err).Msg("No project root, skipping .env")
		return nil
	}
	envFilePath := filepath.Join(projectRoot, ".env")

	err = godotenv.Load(envFilePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msgf("No .env at %s", envFilePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", envFilePath, err)
	}
	return nil
}

func getOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return value, nil
}
