package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/bdaybot/internal/store"
)

// NewDeleteHandler returns a handler for the /delete command. Registration
// wraps it in the AdminOnly middleware, so unauthorized senders never get here.
func NewDeleteHandler(deps HandlerDeps) bot.HandlerFunc {
	return deleteHandler{deps}.Handle
}

type deleteHandler struct {
	deps HandlerDeps
}

func (h deleteHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "delete")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	log.InfoContext(ctx, "Handling delete command", "chat_id", update.Message.Chat.ID, "user_id", update.Message.From.ID)

	name, err := parseDeleteArgs(commandArgs(update.Message.Text))
	if err != nil {
		reply(ctx, b, update, h.deps, "Invalid format. Please use '/delete Full Name'.")
		return
	}

	switch err := h.deps.Store.Delete(name); {
	case errors.Is(err, store.ErrNotFound):
		reply(ctx, b, update, h.deps, fmt.Sprintf(
			"No birthday found for '%s'. Please make sure you've entered the full name exactly as it appears in the birthday list.", name))
	case err != nil:
		log.ErrorContext(ctx, "Failed to delete birthday", "name", name, "error", err)
		reply(ctx, b, update, h.deps, h.deps.Config.Messages.GeneralError)
	default:
		reply(ctx, b, update, h.deps, fmt.Sprintf("Birthday of %s has been removed successfully!", name))
	}
}
