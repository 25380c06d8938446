package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/config"
)

// NewLogger creates a structured zerolog.Logger tagged with the service name
// and the upstream it talks to. Output goes to stdout.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return New(os.Stdout, cfg)
}

// New is NewLogger with an explicit writer.
func New(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.DokployURL != "" {
		ctx = ctx.Str("dokploy_url", cfg.DokployURL)
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
