// Package main contains the entrypoint for the jenbot Discord bot.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/jenbot/jenbot/internal/ai"
	"github.com/jenbot/jenbot/internal/bot"
	"github.com/jenbot/jenbot/internal/bot/handlers"
	"github.com/jenbot/jenbot/internal/bot/tasks"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/cooldown"
	"github.com/jenbot/jenbot/internal/currency"
	"github.com/jenbot/jenbot/internal/discord"
	"github.com/jenbot/jenbot/internal/horoscope"
	"github.com/jenbot/jenbot/internal/logger"
	"github.com/jenbot/jenbot/internal/reply"
	"github.com/jenbot/jenbot/internal/store"
)

const defaultConfigPath = "./config.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := execute(ctx, os.Args[1:])
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	exitCode := 0
	root := newRootCmd(&exitCode)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jenbot",
		Short:         "Discord bot for AI chat, currency rates and daily horoscopes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			*exitCode = run(cmd.Context(), configPath)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")

	root.AddCommand(&cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK (store=%s, ai=%t, health=%t)\n",
				cfg.Store.Driver, cfg.AI.APIKey != "", cfg.Health.Enabled)
			return nil
		},
	})
	return root
}

// run initializes and starts all application components (config, logger,
// store, AI provider, gateway, scheduler), handles graceful shutdown and
// returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context, configPath string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	st, err := store.New(cfg.Store, log)
	if err != nil {
		log.Error("Failed to open preference store", "driver", cfg.Store.Driver, "error", err)
		return 1
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Error closing preference store", "error", err)
		}
	}()

	gen, err := ai.New(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize AI provider", "provider", cfg.AI.Provider, "error", err)
		return 1
	}

	gw, err := discord.New(cfg.Discord.Token, log)
	if err != nil {
		log.Error("Failed to create Discord gateway", "error", err)
		return 1
	}

	clock := clockwork.NewRealClock()
	deliverer := horoscope.NewDeliverer(gw, horoscope.NewClient(cfg.Horoscope, log), cfg.Messages, log)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Messenger: gw,
		Identity:  gw,
		Store:     st,
		AI:        gen,
		Cooldown:  cooldown.New(cfg.AI.MinDelay),
		Clock:     clock,
		Rates:     currency.NewClient(cfg.Currency, log),
		Horoscope: deliverer,
		Emitter:   reply.NewEmitter(gw, cfg.Reply.MaxLength, cfg.Reply.ChunkSize, cfg.Reply.Pace),
		Flows:     handlers.NewFlows(clock, cfg.Selection.Timeout),
	}
	router := handlers.NewRouter(hDeps, handlers.RegisterAllCommands(hDeps))
	gw.OnMessage(logger.Middleware(log)(router.HandleMessage))
	gw.OnInteraction(router.HandleInteraction)

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Config:    cfg,
		Store:     st,
		Messenger: gw,
		Horoscope: deliverer,
	}
	sched, err := bot.NewScheduler(log, cfg.Scheduler, tasks.RegisterAllTasks(tDeps), clock)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, gw, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
