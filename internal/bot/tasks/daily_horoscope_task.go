package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/zodiac"
)

// newDailyHoroscopeTask creates the task that sends every registered user
// today's reading by direct message. Each user is handled on its own: a
// failure is logged and the run moves on to the next user. Nothing is
// retried within a run.
func newDailyHoroscopeTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", DailyHoroscope)

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Running daily horoscope task...")
		startTime := time.Now()

		users, err := deps.Store.All(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to read registrations", "error", err)
			return fmt.Errorf("daily horoscope: failed to read registrations: %w", err)
		}
		if len(users) == 0 {
			log.InfoContext(ctx, "No registered users, nothing to send")
			return nil
		}

		ids := make([]string, 0, len(users))
		for id := range users {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var delivered, failed int
		for _, id := range ids {
			if ctx.Err() != nil {
				log.WarnContext(ctx, "Daily horoscope task interrupted", "delivered", delivered, "failed", failed, "remaining", len(ids)-delivered-failed)
				return ctx.Err()
			}

			sign := users[id]
			if err := deliver(ctx, deps, id, sign); err != nil {
				failed++
				level := slog.LevelError
				if errors.Is(err, chat.ErrNotFound) || errors.Is(err, chat.ErrForbidden) {
					level = slog.LevelWarn
				}
				log.Log(ctx, level, "Cannot send horoscope to user", "user_id", id, "sign", sign, "error", err)
				continue
			}
			delivered++
			log.DebugContext(ctx, "Sent horoscope", "user_id", id, "sign", sign)
		}

		log.InfoContext(ctx, "Daily horoscope task finished",
			"users", len(ids),
			"delivered", delivered,
			"failed", failed,
			"duration", time.Since(startTime),
		)
		return nil
	}
}

func deliver(ctx context.Context, deps TaskDeps, userID string, sign zodiac.Sign) error {
	user, err := deps.Messenger.ResolveUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	return deps.Horoscope.Deliver(ctx, chat.ToUser{UserID: user.ID}, sign)
}
