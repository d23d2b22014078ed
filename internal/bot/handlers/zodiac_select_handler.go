package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/zodiac"
)

// zodiacMenu renders the twelve-sign menu for flow id.
func zodiacMenu(id, placeholder string) chat.SelectMenu {
	signs := zodiac.All()
	options := make([]chat.SelectOption, len(signs))
	for i, s := range signs {
		options[i] = chat.SelectOption{Label: s.String(), Value: s.String(), Emoji: s.Emoji()}
	}
	return chat.SelectMenu{
		CustomID:    zodiacComponent + ":" + id,
		Placeholder: placeholder,
		Options:     options,
	}
}

// openSelection posts prompt with a fresh sign menu owned by the author of
// msg.
func openSelection(ctx context.Context, deps HandlerDeps, log *slog.Logger, msg chat.Message, prompt string) {
	fl := deps.Flows.Open(msg.AuthorID, msg.ChannelID)
	menu := zodiacMenu(fl.ID, deps.Config.Messages.SelectionPlaceholder)
	if _, err := deps.Messenger.SendComponents(ctx, msg.ChannelID, prompt, []chat.Component{menu}); err != nil {
		log.ErrorContext(ctx, "Failed to send sign menu", "channel_id", msg.ChannelID, "error", err)
		deps.Flows.Complete(fl.ID)
		return
	}
	log.DebugContext(ctx, "Opened sign selection", "flow_id", fl.ID, "user_id", msg.AuthorID)
}

type zodiacSelectHandler struct {
	deps HandlerDeps
}

// NewZodiacSelectHandler creates the callback of the sign menu. Only the
// flow owner can answer; the choice is stored and today's reading is posted
// to the channel.
func NewZodiacSelectHandler(deps HandlerDeps) chat.InteractionHandler {
	return zodiacSelectHandler{deps}.Handle
}

func (h zodiacSelectHandler) Handle(ctx context.Context, in chat.Interaction) {
	deps := h.deps
	log := deps.Logger.With("handler", "zodiac_select", "user_id", in.UserID)
	msgs := deps.Config.Messages

	ephemeral := func(content string) {
		if err := deps.Messenger.RespondEphemeral(ctx, in, content); err != nil {
			log.ErrorContext(ctx, "Failed to answer interaction", "error", err)
		}
	}

	id := strings.TrimPrefix(in.CustomID, zodiacComponent+":")
	fl, state := deps.Flows.Lookup(id)
	if state != FlowOpen {
		log.DebugContext(ctx, "Selection on closed flow", "flow_id", id, "state", state)
		ephemeral(msgs.SelectionExpired)
		return
	}

	if in.UserID != fl.Owner {
		log.InfoContext(ctx, "Rejected selection from non-owner", "flow_id", id, "owner_id", fl.Owner)
		ephemeral(msgs.SelectionNotOwner)
		return
	}

	if len(in.Values) != 1 {
		ephemeral(msgs.GeneralError)
		return
	}
	sign, err := zodiac.Parse(in.Values[0])
	if err != nil {
		log.WarnContext(ctx, "Invalid sign selected", "value", in.Values[0])
		ephemeral(msgs.GeneralError)
		return
	}

	// Claim the flow before writing so concurrent answers save at most once.
	if !deps.Flows.Complete(id) {
		log.DebugContext(ctx, "Selection lost the race for its flow", "flow_id", id)
		ephemeral(msgs.SelectionExpired)
		return
	}

	existed, err := deps.Store.Put(ctx, in.UserID, sign)
	if err != nil {
		log.ErrorContext(ctx, "Failed to save sign", "sign", sign, "error", err)
		ephemeral(msgs.GeneralError)
		return
	}

	confirmation := msgs.SignRegistered
	if existed {
		confirmation = msgs.SignUpdated
	}
	log.InfoContext(ctx, "Saved sign", "sign", sign, "updated", existed)

	if err := deps.Messenger.RespondUpdate(ctx, in, fmt.Sprintf(confirmation, sign), nil); err != nil {
		log.ErrorContext(ctx, "Failed to confirm selection", "error", err)
	}

	dest := chat.ToChannel{ChannelID: in.ChannelID, MentionUserID: in.UserID}
	if err := deps.Horoscope.Deliver(ctx, dest, sign); err != nil {
		log.WarnContext(ctx, "Horoscope delivery after selection failed", "sign", sign, "error", err)
	}
}
