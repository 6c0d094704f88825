package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jpillora/backoff"

	"github.com/edgard/bdaybot/internal/config"
)

// Notifier sends plain-text notifications to the configured destinations.
// Failed sends get at most one fast retry; a destination that still fails
// is logged and skipped so the remaining destinations are not affected.
type Notifier struct {
	bot    *bot.Bot
	cfg    *config.Config
	logger *slog.Logger
}

// NewNotifier creates a Notifier bound to the configured chats.
func NewNotifier(b *bot.Bot, cfg *config.Config, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		bot:    b,
		cfg:    cfg,
		logger: logger.With("component", "notifier"),
	}
}

// Broadcast sends text to every named destination (config.DestinationGroup,
// config.DestinationPersonal). Unknown destination names are logged and
// skipped.
func (n *Notifier) Broadcast(ctx context.Context, destinations []string, text string) error {
	for _, dest := range destinations {
		chatID, ok := n.cfg.ChatID(dest)
		if !ok {
			n.logger.Warn("Unknown notification destination", "destination", dest)
			continue
		}
		if err := n.send(ctx, chatID, text); err != nil {
			n.logger.Error("Failed to send notification", "destination", dest, "chat_id", chatID, "error", err)
		}
	}
	return nil
}

// send delivers one message with at most one fast retry.
func (n *Notifier) send(ctx context.Context, chatID int64, text string) error {
	b := &backoff.Backoff{Min: 100 * time.Millisecond, Max: time.Second}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		_, lastErr = n.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
