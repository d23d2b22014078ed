// Package discord implements the chat port on the Discord gateway using
// bwmarrin/discordgo.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/logger"
)

// Intents requested on identify.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

// Gateway owns the Discord session. It delivers inbound events to the
// registered handlers and implements chat.Messenger for outbound calls.
type Gateway struct {
	session *discordgo.Session
	logger  *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once

	mu            sync.RWMutex
	self          chat.User
	baseCtx       context.Context
	onMessage     chat.MessageHandler
	onInteraction chat.InteractionHandler
}

// New creates a gateway for token. Nothing connects until Run.
func New(token string, log *slog.Logger) (*Gateway, error) {
	if token == "" {
		return nil, errors.New("discord bot token cannot be empty")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "discord_gateway")

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = Intents
	session.LogLevel = discordgo.LogWarning
	discordgo.Logger = logger.DiscordLogger(log)

	g := &Gateway{
		session: session,
		logger:  log,
		ready:   make(chan struct{}),
		baseCtx: context.Background(),
	}
	session.AddHandler(g.handleReady)
	session.AddHandler(g.handleMessageCreate)
	session.AddHandler(g.handleInteractionCreate)

	log.Info("Discord session created")
	return g, nil
}

// OnMessage sets the inbound message handler. Call before Run.
func (g *Gateway) OnMessage(h chat.MessageHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onMessage = h
}

// OnInteraction sets the component interaction handler. Call before Run.
func (g *Gateway) OnInteraction(h chat.InteractionHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onInteraction = h
}

// Ready is closed once the first READY event arrives.
func (g *Gateway) Ready() <-chan struct{} {
	return g.ready
}

// Self returns the bot user. It is zero until Ready is closed.
func (g *Gateway) Self() chat.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.self
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	g.mu.Lock()
	g.baseCtx = ctx
	g.mu.Unlock()

	g.logger.Info("Opening Discord gateway connection...")
	if err := g.session.Open(); err != nil {
		g.logger.Error("Failed to open Discord gateway", "error", err)
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}

	<-ctx.Done()
	g.logger.Info("Closing Discord gateway connection...")
	if err := g.session.Close(); err != nil {
		g.logger.Warn("Error closing Discord gateway", "error", err)
	}
	return nil
}

func (g *Gateway) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}
	g.mu.Lock()
	g.self = chat.User{ID: r.User.ID, Name: r.User.Username, Bot: true}
	g.mu.Unlock()

	g.readyOnce.Do(func() { close(g.ready) })
	g.logger.Info("Discord gateway ready", "bot_id", r.User.ID, "bot_username", r.User.Username, "guilds", len(r.Guilds))
}

func (g *Gateway) handleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}
	g.mu.RLock()
	ctx, handler, selfID := g.baseCtx, g.onMessage, g.self.ID
	g.mu.RUnlock()
	if handler == nil {
		return
	}
	handler(ctx, toMessage(m.Message, selfID))
}

func (g *Gateway) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}
	g.mu.RLock()
	ctx, handler := g.baseCtx, g.onInteraction
	g.mu.RUnlock()
	if handler == nil {
		return
	}
	handler(ctx, toInteraction(i.Interaction))
}
