package handlers

import (
	"context"
	"fmt"

	"github.com/jenbot/jenbot/internal/chat"
)

type registerHandler struct {
	deps HandlerDeps
}

// NewRegisterHandler returns the reg command. Registered users get today's
// reading and a short-lived tip; others get the sign menu.
func NewRegisterHandler(deps HandlerDeps) CommandHandler {
	return registerHandler{deps}.Handle
}

func (h registerHandler) Handle(ctx context.Context, msg chat.Message, _ []string) {
	deps := h.deps
	log := deps.Logger.With("handler", "reg", "user_id", msg.AuthorID)
	msgs := deps.Config.Messages

	sign, ok, err := deps.Store.Get(ctx, msg.AuthorID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read registration", "error", err)
		replyText(ctx, deps, log, msg, msgs.GeneralError)
		return
	}

	if !ok {
		openSelection(ctx, deps, log, msg, fmt.Sprintf(msgs.RegisterPrompt, chat.Mention(msg.AuthorID)))
		return
	}

	dest := chat.ToContext{ChannelID: msg.ChannelID, MessageID: msg.ID, UserID: msg.AuthorID}
	if err := deps.Horoscope.Deliver(ctx, dest, sign); err != nil {
		log.WarnContext(ctx, "Horoscope delivery failed", "sign", sign, "error", err)
	}

	tip := fmt.Sprintf(msgs.RegisterTip, deps.Config.Discord.CommandPrefix)
	id, err := deps.Messenger.Send(ctx, msg.ChannelID, tip)
	if err != nil {
		log.ErrorContext(ctx, "Failed to send tip", "error", err)
		return
	}
	deleteAfter(ctx, deps, log, msg.ChannelID, id, deps.Config.Reply.TipTTL)
}
