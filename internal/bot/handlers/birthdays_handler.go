package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewBirthdaysHandler returns a handler for the /birthdays command.
func NewBirthdaysHandler(deps HandlerDeps) bot.HandlerFunc {
	return birthdaysHandler{deps}.Handle
}

type birthdaysHandler struct {
	deps HandlerDeps
}

func (h birthdaysHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "birthdays")

	if update.Message == nil {
		return
	}
	log.InfoContext(ctx, "Handling birthdays command", "chat_id", update.Message.Chat.ID)

	today := time.Now().In(h.deps.Config.Location)
	reply(ctx, b, update, h.deps, buildBirthdaysReply(h.deps.Store.ListAll(), today))
}
