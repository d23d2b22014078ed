package logger

import (
	"errors"
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger implements gocron.Logger on slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger writing to log.
//
//nolint:ireturn // Interface return is required by gocron's API contract
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	return &gocronLogger{log: log.With("component", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) {
	l.log.Debug(msg, processSchedulerArgs(args...)...)
}

func (l *gocronLogger) Error(msg string, args ...any) {
	l.log.Error(msg, processSchedulerArgs(args...)...)
}

func (l *gocronLogger) Info(msg string, args ...any) {
	l.log.Info(msg, processSchedulerArgs(args...)...)
}

func (l *gocronLogger) Warn(msg string, args ...any) {
	l.log.Warn(msg, processSchedulerArgs(args...)...)
}

// processSchedulerArgs annotates scheduler errors with a short category so
// they can be filtered without parsing the message.
func processSchedulerArgs(args ...any) []any {
	processed := make([]any, 0, len(args)+2)

	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			processed = append(processed, args[i])
			break
		}

		key, val := args[i], args[i+1]
		processed = append(processed, key, val)

		if k, ok := key.(string); ok && k == "error" {
			if err, ok := val.(error); ok {
				processed = append(processed, "error_kind", schedulerErrorKind(err))
			}
		}
	}

	return processed
}

func schedulerErrorKind(err error) string {
	switch {
	case errors.Is(err, gocron.ErrJobNotFound):
		return "job_not_found"
	case errors.Is(err, gocron.ErrStopSchedulerTimedOut), errors.Is(err, gocron.ErrStopJobsTimedOut):
		return "shutdown_timeout"
	default:
		return "scheduler"
	}
}
