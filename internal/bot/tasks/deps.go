// Package tasks implements the scheduled jobs of the bot, their
// dependencies and registration.
package tasks

import (
	"log/slog"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/horoscope"
	"github.com/jenbot/jenbot/internal/store"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     store.Store
	Messenger chat.Messenger
	Horoscope *horoscope.Deliverer
}
