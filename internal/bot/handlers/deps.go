package handlers

import (
	"log/slog"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/config"
	"github.com/edgard/bdaybot/internal/store"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   store.Store
	Bitcoin bitcoin.Client
}
