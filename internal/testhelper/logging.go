// Package testhelper configures logging for test binaries. Import it for
// its side effect from a package's main_test.go.
package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogEnv enables test logging when set. Its value is a zerolog level name,
// any unknown value means debug.
const LogEnv = "ARCHETYPE_TEST_LOG"

func init() {
	if !testing.Testing() {
		return
	}
	ConfigureLogging(os.Getenv(LogEnv))
}

// ConfigureLogging disables logging when level is empty and otherwise
// writes human readable logs to stderr at level.
func ConfigureLogging(level string) {
	if level == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
