package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jenbot/jenbot/internal/chat"
)

// typingInterval refreshes the typing indicator before the platform drops it.
const typingInterval = 8 * time.Second

// deleteAfter removes a message once ttl elapses. The deletion outlives the
// handler that scheduled it.
func deleteAfter(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID, messageID string, ttl time.Duration) {
	if ttl <= 0 || messageID == "" {
		return
	}
	detached := context.WithoutCancel(ctx)
	deps.Clock.AfterFunc(ttl, func() {
		if err := deps.Messenger.Delete(detached, channelID, messageID); err != nil {
			log.WarnContext(detached, "Failed to delete transient message", "channel_id", channelID, "message_id", messageID, "error", err)
		}
	})
}

// keepTyping shows the typing indicator in channelID until the returned
// function is called.
func keepTyping(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID string) (stop func()) {
	typing := func() {
		if err := deps.Messenger.Typing(ctx, channelID); err != nil {
			log.DebugContext(ctx, "Failed to send typing indicator", "channel_id", channelID, "error", err)
		}
	}
	typing()

	done := make(chan struct{})
	ticker := deps.Clock.NewTicker(typingInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				typing()
			}
		}
	}()
	return func() { close(done) }
}

func replyText(ctx context.Context, deps HandlerDeps, log *slog.Logger, msg chat.Message, content string) {
	if _, err := deps.Messenger.Reply(ctx, msg, content); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "channel_id", msg.ChannelID, "error", err)
	}
}

func send(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID, content string) {
	if _, err := deps.Messenger.Send(ctx, channelID, content); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "channel_id", channelID, "error", err)
	}
}
