package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jenbot/jenbot/internal/chat"
)

// NewHelpHandler returns a handler for the help command.
func NewHelpHandler(deps HandlerDeps) CommandHandler {
	return helpHandler{deps}.Handle
}

// helpHandler processes the help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, msg chat.Message, _ []string) {
	log := h.deps.Logger.With("handler", "help")
	log.InfoContext(ctx, "Handling help command", "channel_id", msg.ChannelID, "user_id", msg.AuthorID)

	embed := helpEmbed(h.deps.Identity.Self().Name, h.deps.Config.Discord.CommandPrefix, h.deps.Config.Messages.HelpFooter)
	if _, err := h.deps.Messenger.SendEmbed(ctx, msg.ChannelID, embed); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "channel_id", msg.ChannelID)
		return
	}
	log.DebugContext(ctx, "Successfully sent help message", "channel_id", msg.ChannelID)
}

func helpEmbed(botName, p, footer string) chat.Embed {
	var currencyHelp strings.Builder
	fmt.Fprintf(&currencyHelp, "**Get all rates for a currency:** `%susd`\n", p)
	fmt.Fprintf(&currencyHelp, "**Get rates for a specific amount:** `%susd100` or `%susd 100`\n", p, p)
	fmt.Fprintf(&currencyHelp, "**Convert to a specific currency:** `%susd myr`\n", p)
	fmt.Fprintf(&currencyHelp, "**Convert a specific amount:** `%susd100 myr` or `%susd 100 myr`\n\n", p, p)
	currencyHelp.WriteString("Click `📈` on conversions to see a history graph.")

	var horoscopeHelp strings.Builder
	fmt.Fprintf(&horoscopeHelp, "**Register your sign:** `%sreg`\n", p)
	fmt.Fprintf(&horoscopeHelp, "**Modify your sign:** `%smod`\n", p)
	fmt.Fprintf(&horoscopeHelp, "**Remove your record:** `%sremove`\n\n", p)
	horoscopeHelp.WriteString("Once registered, you will automatically receive your horoscope via DM every day!")

	return chat.Embed{
		Title:       botName + " Help",
		Description: "This bot provides AI Chat, Currency Exchange, and Horoscope functionalities.",
		Color:       chat.ColorPurple,
		Footer:      footer,
		Fields: []chat.EmbedField{
			{
				Name:  "🤖 AI Chat Functionality",
				Value: fmt.Sprintf("To chat with the AI, simply mention the bot (`@%s`) followed by your question.", botName),
			},
			{
				Name:  fmt.Sprintf("💱 Currency Exchange (Prefix: `%s`)", p),
				Value: currencyHelp.String(),
			},
			{
				Name:  fmt.Sprintf("✨ Daily Horoscope (Prefix: `%s`)", p),
				Value: horoscopeHelp.String(),
			},
		},
	}
}
