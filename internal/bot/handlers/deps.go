package handlers

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/jenbot/jenbot/internal/ai"
	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/cooldown"
	"github.com/jenbot/jenbot/internal/currency"
	"github.com/jenbot/jenbot/internal/horoscope"
	"github.com/jenbot/jenbot/internal/reply"
	"github.com/jenbot/jenbot/internal/store"
)

// Identity reports the bot's own user once the gateway is connected.
type Identity interface {
	Self() chat.User
}

// RateSource looks up exchange rates.
type RateSource interface {
	Latest(ctx context.Context, base, target string) (currency.Rates, error)
	History(ctx context.Context, base, target string) (currency.History, error)
}

// HandlerDeps provides dependencies for message, command and component
// handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Messenger chat.Messenger
	Identity  Identity
	Store     store.Store
	// AI is nil when no provider is configured.
	AI        ai.Generator
	Cooldown  *cooldown.Gate
	Clock     clockwork.Clock
	Rates     RateSource
	Horoscope *horoscope.Deliverer
	Emitter   *reply.Emitter
	Flows     *Flows
}
