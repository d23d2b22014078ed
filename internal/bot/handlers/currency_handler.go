package handlers

import (
	"context"
	"fmt"

	"github.com/jenbot/jenbot/internal/chat"
	"github.com/jenbot/jenbot/internal/currency"
	"github.com/jenbot/jenbot/internal/reply"
)

type currencyHandler struct {
	deps HandlerDeps
}

// NewCurrencyHandler creates the handler for free-form conversion requests.
// A status message is posted first and then edited into the result.
func NewCurrencyHandler(deps HandlerDeps) func(ctx context.Context, msg chat.Message, cmd currency.Command) {
	return currencyHandler{deps}.Handle
}

func (h currencyHandler) Handle(ctx context.Context, msg chat.Message, cmd currency.Command) {
	deps := h.deps
	log := deps.Logger.With("handler", "currency", "base", cmd.Base, "target", cmd.Target)
	msgs := deps.Config.Messages

	statusID, err := deps.Messenger.Send(ctx, msg.ChannelID, fmt.Sprintf(msgs.CurrencyFetching, cmd.Base))
	if err != nil {
		log.ErrorContext(ctx, "Failed to send status message", "channel_id", msg.ChannelID, "error", err)
		return
	}
	edit := func(content string, components []chat.Component) {
		if err := deps.Messenger.Edit(ctx, msg.ChannelID, statusID, content, components); err != nil {
			log.ErrorContext(ctx, "Failed to edit status message", "message_id", statusID, "error", err)
		}
	}

	rates, err := deps.Rates.Latest(ctx, cmd.Base, cmd.Target)
	if err != nil {
		log.WarnContext(ctx, "Exchange rate lookup failed", "error", err)
		edit(fmt.Sprintf(msgs.CurrencyFetchError, cmd.Base), nil)
		return
	}

	amount := currency.FormatAmount(cmd.Amount)
	header := fmt.Sprintf(msgs.CurrencyHeader, amount, rates.Base, rates.Date)

	if cmd.Target != "" {
		result, ok := rates.Convert(cmd.Amount, cmd.Target)
		if !ok {
			edit(fmt.Sprintf(msgs.CurrencyRateMissing, cmd.Target), nil)
			return
		}
		content := header + "\n" + fmt.Sprintf(msgs.CurrencyResult, amount, rates.Base, currency.FormatResult(result), cmd.Target)
		edit(content, []chat.Component{
			chat.Button{CustomID: historyCustomID(rates.Base, cmd.Target), Label: msgs.HistoryButton},
		})
		return
	}

	edit(header, nil)
	for _, block := range reply.PackLines(rates.TableLines(cmd.Amount), deps.Config.Reply.BlockLimit) {
		if _, err := deps.Messenger.Send(ctx, msg.ChannelID, reply.CodeBlock(block)); err != nil {
			log.ErrorContext(ctx, "Failed to send rate table block", "error", err)
			return
		}
	}
}

func historyCustomID(base, target string) string {
	return historyComponent + ":" + base + ":" + target
}
