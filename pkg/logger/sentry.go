package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes to both stdout and Sentry.
// If DSN is empty or Sentry initialization fails, it falls back to
// stdout-only logging, so the same code path is safe in local development.
func NewWithSentry(cfg SentryConfig) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if cfg.DSN == "" {
		return slog.New(stdoutHandler)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.Any("error", err))
		return slog.New(stdoutHandler)
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError}, // errors create Issues in Sentry
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(newMultiHandler(stdoutHandler, sentryHandler))
}
