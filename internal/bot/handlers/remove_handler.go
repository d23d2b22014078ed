package handlers

import (
	"context"
	"fmt"

	"github.com/jenbot/jenbot/internal/chat"
)

type removeHandler struct {
	deps HandlerDeps
}

// NewRemoveHandler returns the remove command.
func NewRemoveHandler(deps HandlerDeps) CommandHandler {
	return removeHandler{deps}.Handle
}

func (h removeHandler) Handle(ctx context.Context, msg chat.Message, _ []string) {
	deps := h.deps
	log := deps.Logger.With("handler", "remove", "user_id", msg.AuthorID)
	msgs := deps.Config.Messages

	existed, err := deps.Store.Delete(ctx, msg.AuthorID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to delete registration", "error", err)
		send(ctx, deps, log, msg.ChannelID, msgs.GeneralError)
		return
	}

	if !existed {
		send(ctx, deps, log, msg.ChannelID, msgs.RemoveMissing)
		return
	}
	log.InfoContext(ctx, "Registration removed")
	send(ctx, deps, log, msg.ChannelID, fmt.Sprintf(msgs.RemoveDone, deps.Config.Discord.CommandPrefix))
}
