// Package logger provides structured logging for jenbot. It uses Go's slog
// package with configurable levels and formats, and bridges the logging hooks
// of the gateway and scheduler libraries into slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jenbot/jenbot/internal/chat"
)

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	return newLogger(os.Stdout, levelStr, jsonOutput)
}

func newLogger(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config level name to a slog.Level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware wraps an inbound message handler with start and finish logging.
// Messages authored by bots are logged at debug level only.
func Middleware(log *slog.Logger) func(chat.MessageHandler) chat.MessageHandler {
	return func(next chat.MessageHandler) chat.MessageHandler {
		return func(ctx context.Context, msg chat.Message) {
			startTime := time.Now()

			logEntry := log.With(
				"message_id", msg.ID,
				"channel_id", msg.ChannelID,
				"user_id", msg.AuthorID,
				"direct", msg.Direct,
				"text_preview", truncateString(msg.Content, 50),
			)

			level := slog.LevelInfo
			if msg.AuthorIsBot {
				level = slog.LevelDebug
			}

			logEntry.Log(ctx, level, "Processing message")

			next(ctx, msg)

			logEntry.Log(ctx, level, "Finished processing message", "duration", time.Since(startTime))
		}
	}
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}
