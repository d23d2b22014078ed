package reply

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/jenbot/jenbot/internal/chat"
)

// Emitter delivers one logical reply as a sequence of chunks: the first as a
// reply to the triggering message, the rest as plain sends to its channel.
type Emitter struct {
	messenger chat.Messenger
	maxLength int
	chunkSize int
	pace      time.Duration
}

// NewEmitter returns an emitter splitting at maxLength into chunkSize pieces
// and waiting pace between consecutive sends.
func NewEmitter(m chat.Messenger, maxLength, chunkSize int, pace time.Duration) *Emitter {
	return &Emitter{messenger: m, maxLength: maxLength, chunkSize: chunkSize, pace: pace}
}

// Emit sends text in order, one chunk at a time. It stops at the first
// failed send.
func (e *Emitter) Emit(ctx context.Context, msg chat.Message, text string) error {
	chunks := Split(text, e.maxLength, e.chunkSize)

	limit := rate.Inf
	if e.pace > 0 {
		limit = rate.Every(e.pace)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i, chunk := range chunks {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("reply pacing interrupted after %d of %d chunks: %w", i, len(chunks), err)
		}

		var err error
		if i == 0 {
			_, err = e.messenger.Reply(ctx, msg, chunk)
		} else {
			_, err = e.messenger.Send(ctx, msg.ChannelID, chunk)
		}
		if err != nil {
			return fmt.Errorf("failed to send chunk %d of %d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}
