package handlers

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/currency"
)

// Component custom ID prefixes. The part after the first colon is owned by
// the component handler.
const (
	historyComponent = "history"
	zodiacComponent  = "zodiac"
)

// Router picks exactly one handling path for every inbound message and
// dispatches component interactions by custom ID.
type Router struct {
	deps       HandlerDeps
	log        *slog.Logger
	commands   map[string]CommandHandler
	currency   func(ctx context.Context, msg chat.Message, cmd currency.Command)
	mention    chat.MessageHandler
	components map[string]chat.InteractionHandler
}

// NewRouter builds a router over the given commands, as returned by
// RegisterAllCommands.
func NewRouter(deps HandlerDeps, commands map[string]RegisteredHandler) *Router {
	wrapped := make(map[string]CommandHandler, len(commands))
	for name, rh := range commands {
		wrapped[name] = rh.Wrapped()
	}

	return &Router{
		deps:     deps,
		log:      deps.Logger.With("component", "router"),
		commands: wrapped,
		currency: NewCurrencyHandler(deps),
		mention:  NewMentionHandler(deps),
		components: map[string]chat.InteractionHandler{
			historyComponent: NewHistoryHandler(deps),
			zodiacComponent:  NewZodiacSelectHandler(deps),
		},
	}
}

// HandleMessage routes msg in priority order: own messages are dropped,
// private channels get a notice, prefixed text runs a registered command or
// else a currency lookup, and a mention goes to the AI.
func (r *Router) HandleMessage(ctx context.Context, msg chat.Message) {
	defer r.recoverPanic(ctx, "message_id", msg.ID)

	if msg.AuthorID == r.deps.Identity.Self().ID {
		return
	}

	if msg.Direct {
		if _, err := r.deps.Messenger.Send(ctx, msg.ChannelID, r.deps.Config.Messages.DirectMessageOnly); err != nil {
			lvl := slog.LevelError
			if errors.Is(err, chat.ErrForbidden) {
				lvl = slog.LevelWarn
			}
			r.log.Log(ctx, lvl, "Failed to send direct message notice", "user_id", msg.AuthorID, "error", err)
		}
		return
	}

	if rest, ok := strings.CutPrefix(msg.Content, r.deps.Config.Discord.CommandPrefix); ok {
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			if h, ok := r.commands[fields[0]]; ok {
				r.log.DebugContext(ctx, "Dispatching command", "command", fields[0], "user_id", msg.AuthorID)
				h(ctx, msg, fields[1:])
				return
			}
		}

		cmd, err := currency.Parse(rest)
		if err != nil {
			r.log.DebugContext(ctx, "Prefixed text is neither a command nor a currency request", "message_id", msg.ID)
			return
		}
		r.currency(ctx, msg, cmd)
		return
	}

	if msg.MentionsBot {
		r.mention(ctx, msg)
	}
}

// HandleInteraction dispatches a component callback by custom ID prefix.
func (r *Router) HandleInteraction(ctx context.Context, in chat.Interaction) {
	defer r.recoverPanic(ctx, "interaction_id", in.ID)

	kind, _, _ := strings.Cut(in.CustomID, ":")
	h, ok := r.components[kind]
	if !ok {
		r.log.DebugContext(ctx, "Ignoring interaction for unknown component", "custom_id", in.CustomID)
		return
	}
	h(ctx, in)
}

func (r *Router) recoverPanic(ctx context.Context, attrs ...any) {
	if v := recover(); v != nil {
		r.log.ErrorContext(ctx, "Handler panicked", append(attrs, "panic", v, "stack", string(debug.Stack()))...)
	}
}
