// Package telegram handles the setup of the Telegram transport: bot
// creation, handler registration, the command menu, and outbound
// notifications.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/bdaybot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully")
	return b, nil
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one is outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers the command handlers with the bot instance.
// The mapping is validated up front: a nil handler is a wiring bug and
// fails startup rather than silently dropping a command.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registered map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	for name, reg := range registered {
		if reg.Handler == nil {
			return fmt.Errorf("handler for %q is nil", name)
		}
	}

	for _, reg := range registered {
		finalHandler := applyMiddleware(reg.Handler, reg.Middleware)
		b.RegisterHandler(reg.HandlerType, reg.Pattern, reg.MatchType, finalHandler)
		log.Debug("Registered handler", "pattern", reg.Pattern, "middleware_count", len(reg.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registered))
	return nil
}

// SetCommandMenu publishes the command list so clients can offer completion.
func SetCommandMenu(ctx context.Context, b *bot.Bot, registered map[string]handlers.RegisteredHandler) error {
	commands := make([]models.BotCommand, 0, len(registered))
	for _, reg := range registered {
		if reg.Description == "" {
			continue
		}
		commands = append(commands, models.BotCommand{Command: reg.Pattern, Description: reg.Description})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Command < commands[j].Command })

	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to set command menu: %w", err)
	}
	return nil
}
