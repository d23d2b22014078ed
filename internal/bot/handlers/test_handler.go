package handlers

import (
	"context"
	"fmt"

	"github.com/jenbot/jenbot/internal/chat"
)

// testReaction marks the triggering message of a test run.
const testReaction = "🧪"

type testHandler struct {
	deps HandlerDeps
}

// NewTestHandler returns the owner-only test command. It runs the daily
// delivery for the caller alone, by direct message.
func NewTestHandler(deps HandlerDeps) CommandHandler {
	return testHandler{deps}.Handle
}

func (h testHandler) Handle(ctx context.Context, msg chat.Message, _ []string) {
	deps := h.deps
	log := deps.Logger.With("handler", "test", "user_id", msg.AuthorID)
	msgs := deps.Config.Messages

	if err := deps.Messenger.React(ctx, msg.ChannelID, msg.ID, testReaction); err != nil {
		log.WarnContext(ctx, "Failed to react to test command", "error", err)
	}

	sign, ok, err := deps.Store.Get(ctx, msg.AuthorID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read registration", "error", err)
		replyText(ctx, deps, log, msg, msgs.GeneralError)
		return
	}

	if !ok {
		if err := deps.Messenger.DirectMessage(ctx, msg.AuthorID, fmt.Sprintf(msgs.TestUnregistered, deps.Config.Discord.CommandPrefix)); err != nil {
			log.ErrorContext(ctx, "Failed to send test notice", "error", err)
		}
		return
	}

	if err := deps.Messenger.DirectMessage(ctx, msg.AuthorID, fmt.Sprintf(msgs.TestRunning, sign)); err != nil {
		log.ErrorContext(ctx, "Failed to send test notice", "error", err)
		return
	}
	if err := deps.Horoscope.Deliver(ctx, chat.ToUser{UserID: msg.AuthorID}, sign); err != nil {
		log.WarnContext(ctx, "Test delivery failed", "sign", sign, "error", err)
		return
	}
	log.InfoContext(ctx, "Test delivery completed", "sign", sign)
}
