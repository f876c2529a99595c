// Package logger builds the zerolog logger shared by the Madoka API.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/forgo/madoka/api/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const serviceName = "madoka-api"

// New returns the base logger: human readable console output in
// development, JSON to stdout everywhere else.
func New(cfg *config.Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.IsDevelopment() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(cfg, out)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(cfg *config.Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	return zerolog.New(out).
		Level(ParseLevel(cfg.Log.Level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("env", cfg.Server.Env).
		Logger()
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
