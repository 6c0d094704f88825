package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/bdaybot/internal/store"
)

const addUsage = "Invalid format. Please use '/add Name DD-MM-YYYY' with a valid date.\n\n" +
	"Note: to remove a birthday later, you'll need the full name with the /delete command."

// NewAddHandler returns a handler for the /add command. Anyone may create a
// new record; changing an existing one is reserved for the authorized user.
func NewAddHandler(deps HandlerDeps) bot.HandlerFunc {
	return addHandler{deps}.Handle
}

type addHandler struct {
	deps HandlerDeps
}

func (h addHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "add")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	log.InfoContext(ctx, "Handling add command", "chat_id", update.Message.Chat.ID, "user_id", update.Message.From.ID)

	name, date, err := parseAddArgs(commandArgs(update.Message.Text))
	if err != nil {
		reply(ctx, b, update, h.deps, addUsage)
		return
	}

	authorized := update.Message.From.ID == h.deps.Config.Telegram.AdminUserID
	outcome, err := h.deps.Store.AddOrUpdate(h.deps.Config.DefaultGroup, name, date, authorized)
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		reply(ctx, b, update, h.deps, fmt.Sprintf("You are not authorized to change %s's birthday.", name))
		return
	case err != nil:
		log.ErrorContext(ctx, "Failed to store birthday", "name", name, "error", err)
		reply(ctx, b, update, h.deps, h.deps.Config.Messages.GeneralError)
		return
	}

	switch outcome {
	case store.AddUpdated:
		reply(ctx, b, update, h.deps, fmt.Sprintf("Birthday of %s updated to %s!", name, displayDate(date.Time)))
	default:
		reply(ctx, b, update, h.deps, fmt.Sprintf("Birthday of %s added as %s!", name, displayDate(date.Time)))
	}
}
