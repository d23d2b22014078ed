package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jenbot/jenbot/internal/chart"
	"github.com/jenbot/jenbot/internal/chat"
)

type historyHandler struct {
	deps HandlerDeps
}

// NewHistoryHandler creates the callback of the "show history" button. It
// disables the button, renders the recent rate series as a chart and posts it
// as a follow-up.
func NewHistoryHandler(deps HandlerDeps) chat.InteractionHandler {
	return historyHandler{deps}.Handle
}

func (h historyHandler) Handle(ctx context.Context, in chat.Interaction) {
	deps := h.deps
	log := deps.Logger.With("handler", "history", "custom_id", in.CustomID)
	msgs := deps.Config.Messages

	base, target, ok := parseHistoryCustomID(in.CustomID)
	if !ok {
		log.WarnContext(ctx, "Malformed history button")
		if err := deps.Messenger.RespondEphemeral(ctx, in, msgs.GeneralError); err != nil {
			log.ErrorContext(ctx, "Failed to answer interaction", "error", err)
		}
		return
	}

	disabled := []chat.Component{chat.Button{CustomID: in.CustomID, Label: msgs.HistoryGenerating, Disabled: true}}
	if err := deps.Messenger.RespondUpdate(ctx, in, "", disabled); err != nil {
		log.ErrorContext(ctx, "Failed to disable history button", "error", err)
		return
	}

	followupError := func(content string) {
		if err := deps.Messenger.FollowupEphemeral(ctx, in, content); err != nil {
			log.ErrorContext(ctx, "Failed to send follow-up", "error", err)
		}
	}

	hist, err := deps.Rates.History(ctx, base, target)
	if err != nil {
		log.WarnContext(ctx, "History lookup failed", "error", err)
		followupError(msgs.HistoryError)
		return
	}

	points := hist.Series(target)
	if len(points) == 0 {
		followupError(msgs.HistoryEmpty)
		return
	}

	line := chart.Line{
		Title:  fmt.Sprintf("%d-Day History: %s to %s", len(points), base, target),
		XLabel: "Date",
		YLabel: fmt.Sprintf("Rate (1 %s = X %s)", base, target),
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		line.Labels[i] = p.Date
		line.Values[i] = p.Rate.InexactFloat64()
	}

	png, err := chart.RenderPNG(line)
	if err != nil {
		log.ErrorContext(ctx, "Failed to render history chart", "error", err)
		followupError(msgs.HistoryError)
		return
	}

	file := chat.File{
		Name:        fmt.Sprintf("%s-%s_history.png", base, target),
		ContentType: "image/png",
		Data:        png,
	}
	if err := deps.Messenger.FollowupFile(ctx, in, file); err != nil {
		log.ErrorContext(ctx, "Failed to post history chart", "error", err)
		return
	}
	log.InfoContext(ctx, "Posted history chart", "points", len(points))
}

func parseHistoryCustomID(id string) (base, target string, ok bool) {
	rest, ok := strings.CutPrefix(id, historyComponent+":")
	if !ok {
		return "", "", false
	}
	base, target, ok = strings.Cut(rest, ":")
	if !ok || base == "" || target == "" {
		return "", "", false
	}
	return base, target, true
}
