package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// upcomingWindowDays is the /soon lookahead window.
const upcomingWindowDays = 30

// NewSoonHandler returns a handler for the /soon command.
func NewSoonHandler(deps HandlerDeps) bot.HandlerFunc {
	return soonHandler{deps}.Handle
}

type soonHandler struct {
	deps HandlerDeps
}

func (h soonHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	today := time.Now().In(h.deps.Config.Location)
	upcoming := h.deps.Store.ListUpcoming(today, upcomingWindowDays)
	reply(ctx, b, update, h.deps, buildSoonReply(upcoming, today, h.deps.Config.Messages.NoneUpcoming))
}
