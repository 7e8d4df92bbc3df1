package cli

import (
	"os"
	"strconv"
	"strings"

	"gear-loadout-optimiser/internal/helpers"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	LogLevel string
	// Profile is the path of an exported profile to optimise.
	Profile string
	// FromDatabase optimises the stored gear pool and loadout instead of a profile's.
	FromDatabase bool
	Display      int
	Slots        []string
	Async        bool
	JSON         bool
}

func constructFlags() Flags {
	return Flags{
		LogLevel: "info",
		Display:  10,
	}
}

func GetFlags() Flags {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) Flags {
	flags := constructFlags()
	if value, ok := flagValue(args, "--log-level"); ok {
		flags.LogLevel = value
	}
	if value, ok := flagValue(args, "--profile"); ok {
		flags.Profile = value
	}
	if helpers.ContainsStr(args, "--from-db") {
		flags.FromDatabase = true
	}
	if value, ok := flagValue(args, "--display"); ok {
		if n, err := strconv.Atoi(value); err == nil {
			flags.Display = n
		} else {
			log.Warn().Msgf("Ignoring invalid --display value %q", value)
		}
	}
	if value, ok := flagValue(args, "--slots"); ok && value != "" {
		flags.Slots = strings.Split(value, ",")
	}
	if helpers.ContainsStr(args, "--async") {
		flags.Async = true
	}
	if helpers.ContainsStr(args, "--json") {
		flags.JSON = true
	}

	return flags
}

func HasFlag(flag string) bool {
	return helpers.ContainsStr(os.Args, flag)
}

// flagValue finds --name=value in args.
func flagValue(args []string, name string) (string, bool) {
	prefix := name + "="
	for _, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			return strings.TrimPrefix(arg, prefix), true
		}
	}
	return "", false
}

// SetLogLevel sets the global log level, falling back to info for unknown names.
func SetLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		log.Warn().Msgf("Unknown log level %q, using info", level)
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
