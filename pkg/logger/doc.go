// Package logger provides log/slog factories used across the module:
// a JSON stdout logger for normal operation, a discard logger as the
// default when logging is not configured, and an optional Sentry-backed
// logger that degrades gracefully to stdout when no DSN is set.
package logger
