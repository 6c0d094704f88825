package handlers

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewFallbackHandler returns the default handler for messages no registered
// pattern matched. It re-dispatches case-insensitively so "ADD" and "/Add"
// behave like "/add", and answers unknown slash commands with a usage hint
// instead of silence. Plain group chatter is ignored.
func NewFallbackHandler(deps HandlerDeps, registered map[string]RegisteredHandler) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.Text == "" {
			return
		}

		keyword, isCommand := commandKeyword(update.Message.Text)
		if reg, ok := registered[keyword]; ok {
			handler := reg.Handler
			for i := len(reg.Middleware) - 1; i >= 0; i-- {
				handler = reg.Middleware[i](handler)
			}
			handler(ctx, b, update)
			return
		}

		if isCommand {
			deps.Logger.InfoContext(ctx, "Unknown command",
				"chat_id", update.Message.Chat.ID, "keyword", keyword)
			reply(ctx, b, update, deps, deps.Config.Messages.UnknownCommand)
		}
	}
}

// commandKeyword extracts the lowercased leading keyword of a message,
// stripping a leading slash and an @botname suffix. isCommand reports
// whether the message was slash-prefixed.
func commandKeyword(text string) (keyword string, isCommand bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}

	keyword = fields[0]
	isCommand = strings.HasPrefix(keyword, "/")
	keyword = strings.TrimPrefix(keyword, "/")
	if at := strings.IndexByte(keyword, '@'); at >= 0 {
		keyword = keyword[:at]
	}
	return strings.ToLower(keyword), isCommand
}
