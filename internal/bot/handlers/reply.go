package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// reply sends a single text reply to the chat the update came from.
func reply(ctx context.Context, b *tgbot.Bot, update *models.Update, deps HandlerDeps, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send reply", "chat_id", update.Message.Chat.ID, "error", err)
	}
}
