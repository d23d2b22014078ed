package handlers

import (
	"context"
	"fmt"

	"github.com/jenbot/jenbot/internal/chat"
)

type modifyHandler struct {
	deps HandlerDeps
}

// NewModifyHandler returns the mod command, which always opens the sign menu.
func NewModifyHandler(deps HandlerDeps) CommandHandler {
	return modifyHandler{deps}.Handle
}

func (h modifyHandler) Handle(ctx context.Context, msg chat.Message, _ []string) {
	log := h.deps.Logger.With("handler", "mod", "user_id", msg.AuthorID)
	openSelection(ctx, h.deps, log, msg, fmt.Sprintf(h.deps.Config.Messages.ModifyPrompt, chat.Mention(msg.AuthorID)))
}
