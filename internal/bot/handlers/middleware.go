// Package handlers contains the message router, the prefixed commands, the
// AI and currency handlers and the interactive component callbacks.
package handlers

import (
	"context"

	"github.com/jenbot/jenbot/internal/chat"
)

// OwnerOnly creates a middleware that checks if the message author is the
// configured owner. Anyone else gets an explicit notice and the command does
// not run.
func OwnerOnly(deps HandlerDeps) Middleware {
	return func(next CommandHandler) CommandHandler {
		return func(ctx context.Context, msg chat.Message, args []string) {
			if deps.Config.Discord.IsOwner(msg.AuthorID) {
				next(ctx, msg, args)
				return
			}

			log := deps.Logger.With("middleware", "OwnerOnly")
			log.WarnContext(ctx, "Unauthorized access attempt", "user_id", msg.AuthorID, "channel_id", msg.ChannelID)

			if _, err := deps.Messenger.Reply(ctx, msg, deps.Config.Messages.OwnerOnly); err != nil {
				log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "channel_id", msg.ChannelID)
			}
		}
	}
}
