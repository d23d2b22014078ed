package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jenbot/jenbot/internal/chat"
)

type mentionHandler struct {
	deps HandlerDeps
}

// NewMentionHandler creates a handler that answers messages mentioning the
// bot with an AI reply. Calls share one global cooldown.
func NewMentionHandler(deps HandlerDeps) chat.MessageHandler {
	return mentionHandler{deps}.Handle
}

func (h mentionHandler) Handle(ctx context.Context, msg chat.Message) {
	deps := h.deps
	log := deps.Logger.With("handler", "mention")
	msgs := deps.Config.Messages

	if deps.AI == nil {
		replyText(ctx, deps, log, msg, msgs.AIOffline)
		return
	}

	prompt := stripMention(msg.Content, deps.Identity.Self().ID)
	if prompt == "" {
		replyText(ctx, deps, log, msg, msgs.AIEmptyPrompt)
		return
	}

	if wait := deps.Cooldown.Check(deps.Clock.Now()); wait > 0 {
		log.DebugContext(ctx, "AI call rejected by cooldown", "user_id", msg.AuthorID, "wait", wait)
		id, err := deps.Messenger.Reply(ctx, msg, fmt.Sprintf(msgs.AICooldown, wait.Seconds()))
		if err != nil {
			log.ErrorContext(ctx, "Failed to send cooldown notice", "channel_id", msg.ChannelID, "error", err)
			return
		}
		deleteAfter(ctx, deps, log, msg.ChannelID, id, deps.Config.Reply.CooldownNoticeTTL)
		return
	}

	log.InfoContext(ctx, "Sending prompt to AI", "user_id", msg.AuthorID, "prompt_length", len(prompt))

	stopTyping := keepTyping(ctx, deps, log, msg.ChannelID)
	aiCtx, cancel := context.WithTimeout(ctx, deps.Config.AI.Timeout)
	text, err := deps.AI.Generate(aiCtx, prompt)
	cancel()
	stopTyping()

	if err != nil {
		log.ErrorContext(ctx, "AI generation failed", "user_id", msg.AuthorID, "error", err)
		replyText(ctx, deps, log, msg, msgs.AIError)
		return
	}
	deps.Cooldown.MarkSuccess(deps.Clock.Now())

	if err := deps.Emitter.Emit(ctx, msg, text); err != nil {
		log.ErrorContext(ctx, "Failed to deliver AI reply", "channel_id", msg.ChannelID, "error", err)
	}
}

// stripMention removes every mention of botID and trims the rest.
func stripMention(content, botID string) string {
	if botID != "" {
		content = strings.ReplaceAll(content, "<@"+botID+">", "")
		content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	}
	return strings.TrimSpace(content)
}
