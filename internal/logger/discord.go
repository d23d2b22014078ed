package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// DiscordLogger returns a function suitable for discordgo.Logger that routes
// library messages into log.
func DiscordLogger(log *slog.Logger) func(msgL, caller int, format string, a ...any) {
	log = log.With("source", "discordgo")
	return func(msgL, _ int, format string, a ...any) {
		log.Log(context.Background(), discordLevel(msgL), fmt.Sprintf(format, a...))
	}
}

func discordLevel(msgL int) slog.Level {
	switch msgL {
	case discordgo.LogError:
		return slog.LevelError
	case discordgo.LogWarning:
		return slog.LevelWarn
	case discordgo.LogInformational:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
