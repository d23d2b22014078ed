package handlers

import (
	"context"

	"github.com/jenbot/jenbot/internal/chat"
)

// CommandHandler handles one prefixed command. args holds the whitespace
// separated words after the command name.
type CommandHandler func(ctx context.Context, msg chat.Message, args []string)

// Middleware wraps a CommandHandler.
type Middleware func(next CommandHandler) CommandHandler

// RegisteredHandler represents a command handler with its description and middleware.
type RegisteredHandler struct {
	Name        string
	Description string
	Handler     CommandHandler
	Middleware  []Middleware
}

// Wrapped returns the handler with its middleware applied, outermost first.
func (r RegisteredHandler) Wrapped() CommandHandler {
	h := r.Handler
	for i := len(r.Middleware) - 1; i >= 0; i-- {
		h = r.Middleware[i](h)
	}
	return h
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands keyed by name.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["help"] = RegisteredHandler{
		Name:        "help",
		Description: "Show the help card.",
		Handler:     NewHelpHandler(deps),
	}
	handlers["reg"] = RegisteredHandler{
		Name:        "reg",
		Description: "Register for daily horoscopes or see your current one.",
		Handler:     NewRegisterHandler(deps),
	}
	handlers["mod"] = RegisteredHandler{
		Name:        "mod",
		Description: "Modify your registered zodiac sign.",
		Handler:     NewModifyHandler(deps),
	}
	handlers["remove"] = RegisteredHandler{
		Name:        "remove",
		Description: "Remove your horoscope registration.",
		Handler:     NewRemoveHandler(deps),
	}

	ownerMiddleware := []Middleware{OwnerOnly(deps)}

	handlers["test"] = RegisteredHandler{
		Name:        "test",
		Description: "Run the daily horoscope delivery for yourself.",
		Handler:     NewTestHandler(deps),
		Middleware:  ownerMiddleware,
	}

	return handlers
}
