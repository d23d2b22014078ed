// Package bot wires the Discord gateway, the daily scheduler and the optional
// health endpoint together and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jenbot/jenbot/internal/bot/tasks"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/health"
)

// Gateway is the chat connection the bot runs on.
type Gateway interface {
	// Run blocks until ctx is cancelled or the connection fails.
	Run(ctx context.Context) error
	// Ready is closed once the connection is established.
	Ready() <-chan struct{}
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	gateway   Gateway
	scheduler *Scheduler
	health    *health.Server
}

// NewBot creates the orchestrator. The health server is created when
// cfg.Health.Enabled is set.
func NewBot(logger *slog.Logger, cfg *config.Config, gateway Gateway, scheduler *Scheduler) *Bot {
	b := &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		gateway:   gateway,
		scheduler: scheduler,
	}
	if cfg.Health.Enabled {
		b.health = health.NewServer(cfg.Health.Addr, b.Status, logger)
	}
	return b
}

// Status reports gateway readiness and the next daily run.
func (b *Bot) Status() health.Status {
	var st health.Status
	select {
	case <-b.gateway.Ready():
		st.Ready = true
	default:
	}
	if next, err := b.scheduler.NextRun(tasks.DailyHoroscope); err == nil {
		st.NextDailyRun = &next
	}
	return st
}

// Run starts the bot and all its components, handling graceful shutdown on
// context cancellation. The scheduler starts only after the gateway is ready.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Discord gateway...")
		if err := b.gateway.Run(gCtx); err != nil {
			return fmt.Errorf("discord gateway: %w", err)
		}
		b.logger.Info("Discord gateway stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Discord gateway stopped unexpectedly without context cancellation.")
			return fmt.Errorf("discord gateway stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-b.gateway.Ready():
		case <-gCtx.Done():
			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error releasing scheduler", "error", err)
			}
			return nil
		}

		b.logger.Info("Gateway ready, starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		if next, err := b.scheduler.NextRun(tasks.DailyHoroscope); err == nil {
			b.logger.Info("Daily horoscope scheduled", "next_run", next)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.health != nil {
		g.Go(func() error {
			b.logger.Info("Starting health server...", "addr", b.cfg.Health.Addr)
			if err := b.health.Run(gCtx); err != nil {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
