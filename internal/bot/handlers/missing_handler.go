package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMissingHandler returns a handler for the /missing command.
func NewMissingHandler(deps HandlerDeps) bot.HandlerFunc {
	return missingHandler{deps}.Handle
}

type missingHandler struct {
	deps HandlerDeps
}

func (h missingHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	missing := h.deps.Store.ListMissing()
	reply(ctx, b, update, h.deps, buildMissingReply(missing, h.deps.Config.Messages.AllBirthdaysSet))
}
