package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/bdaybot/internal/bitcoin"
)

// NewBitcoinHandler returns a handler for the /bitcoin command.
func NewBitcoinHandler(deps HandlerDeps) bot.HandlerFunc {
	return bitcoinHandler{deps}.Handle
}

type bitcoinHandler struct {
	deps HandlerDeps
}

func (h bitcoinHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "bitcoin")

	if update.Message == nil {
		return
	}
	log.InfoContext(ctx, "Handling bitcoin command", "chat_id", update.Message.Chat.ID)

	quote, err := h.deps.Bitcoin.Quote(ctx)
	switch {
	case errors.Is(err, bitcoin.ErrStaleQuote):
		reply(ctx, b, update, h.deps, buildQuoteReply(quote, true))
	case err != nil:
		log.WarnContext(ctx, "Bitcoin quote unavailable", "error", err)
		reply(ctx, b, update, h.deps, h.deps.Config.Messages.PriceUnavailable)
	default:
		reply(ctx, b, update, h.deps, buildQuoteReply(quote, false))
	}
}
