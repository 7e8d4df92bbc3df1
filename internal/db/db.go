package db

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"

	"gear-loadout-optimiser/internal/env"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Database struct {
	Conn *sql.DB
}

func (c Config) connectionString() string {
	host := c.Host
	if c.Port != "" {
		host = net.JoinHostPort(c.Host, c.Port)
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.User, c.Password),
		Host:     host,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func NewDatabase(config Config) (*Database, error) {
	conn, err := sql.Open("postgres", config.connectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{
		Conn: conn,
	}, nil
}

// CreateLoadoutDBClient connects to the gear database described by the environment.
func CreateLoadoutDBClient(e env.Env) (*Database, error) {
	log.Info().Msg("connecting to database")
	return NewDatabase(Config{
		Host:     e.PgHost,
		Port:     e.PgPort,
		User:     e.PgUser,
		Password: e.PgPassword,
		Name:     e.PgName,
	})
}

func (d *Database) Close() error {
	return d.Conn.Close()
}
