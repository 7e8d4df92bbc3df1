package cli

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	flags := parseFlags([]string{
		"--log-level=debug",
		"--profile=./profile.json",
		"--from-db",
		"--display=25",
		"--slots=ring,head",
		"--json",
	})

	assert.Equal(t, "debug", flags.LogLevel)
	assert.Equal(t, "./profile.json", flags.Profile)
	assert.True(t, flags.FromDatabase)
	assert.Equal(t, 25, flags.Display)
	assert.Equal(t, []string{"ring", "head"}, flags.Slots)
	assert.True(t, flags.JSON)
	assert.False(t, flags.Async)
}

func TestParseFlags_Defaults(t *testing.T) {
	flags := parseFlags(nil)

	assert.Equal(t, "info", flags.LogLevel)
	assert.Equal(t, 10, flags.Display)
	assert.Empty(t, flags.Slots)
}

func TestParseFlags_InvalidDisplayKeepsDefault(t *testing.T) {
	assert.Equal(t, 10, parseFlags([]string{"--display=lots"}).Display)
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLogLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLogLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
