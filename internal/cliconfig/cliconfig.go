// Package cliconfig loads the small set of environment-driven settings the
// cmd/ tools share: an optional .env file and a log level, following
// ericpeers-portfolio/config.Load's env-over-dotenv precedence.
package cliconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Settings holds the environment-derived configuration for a cmd/ tool.
type Settings struct {
	LogLevel logrus.Level
}

// Load reads a .env file if present (without overriding already-set shell
// variables) and resolves LOGLEVEL, defaulting to "warning".
func Load() Settings {
	_ = godotenv.Load()

	levelName := strings.TrimSpace(os.Getenv("LOGLEVEL"))
	if levelName == "" {
		levelName = "warning"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.WarnLevel
	}
	return Settings{LogLevel: level}
}

// NewLogger builds a logrus.Logger at the configured level, writing to
// stderr so stdout stays reserved for JSON output.
func NewLogger(s Settings) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(s.LogLevel)
	return log
}
