package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its registration
// pattern, middleware, and menu description.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Description string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes the command-name-to-handler mapping. Keys
// are the bare command keywords; the fallback handler uses them for
// case-insensitive dispatch.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	command := func(pattern, description string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Description: description,
			Handler:     handler,
			Middleware:  mw,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		}
	}

	adminOnly := AdminOnly(deps)

	registered := make(map[string]RegisteredHandler)
	registered["start"] = command("start", "Get a welcome message", NewStartHandler(deps))
	registered["hello"] = command("hello", "", NewStartHandler(deps))
	registered["help"] = command("help", "Show available commands", NewHelpHandler(deps))
	registered["birthdays"] = command("birthdays", "List all birthdays", NewBirthdaysHandler(deps))
	registered["missing"] = command("missing", "Show names without birthdays", NewMissingHandler(deps))
	registered["add"] = command("add", "Add a birthday: /add Name DD-MM-YYYY", NewAddHandler(deps))
	registered["delete"] = command("delete", "Remove a birthday (authorized users only)", NewDeleteHandler(deps), adminOnly)
	registered["bitcoin"] = command("bitcoin", "Current Bitcoin price and suggested fee", NewBitcoinHandler(deps))
	registered["soon"] = command("soon", "Birthdays in the next 30 days", NewSoonHandler(deps))

	deps.Logger.Info("Initialized command handlers", "count", len(registered))
	return registered
}
