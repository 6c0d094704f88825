// Package main contains the entrypoint for the birthday bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/bot"
	"github.com/edgard/bdaybot/internal/bot/handlers"
	"github.com/edgard/bdaybot/internal/bot/tasks"
	"github.com/edgard/bdaybot/internal/config"
	"github.com/edgard/bdaybot/internal/logger"
	"github.com/edgard/bdaybot/internal/postal"
	"github.com/edgard/bdaybot/internal/store"
	"github.com/edgard/bdaybot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components, starts the bot, and blocks until shutdown.
// It returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	st, err := store.New(cfg.Store.Path, log)
	if err != nil {
		log.Error("Failed to open birthday store", "path", cfg.Store.Path, "error", err)
		return 1
	}

	btc := bitcoin.New(cfg.Bitcoin.CoinGeckoAPIKey, log)

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Store:   st,
		Bitcoin: btc,
	}
	cmdHandlers := handlers.RegisterAllCommands(hDeps)

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewFallbackHandler(hDeps, cmdHandlers)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommandMenu(ctx, tg, cmdHandlers); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	notifier := telegram.NewNotifier(tg, cfg, log)

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Config:   cfg,
		Store:    st,
		Bitcoin:  btc,
		Notifier: notifier,
		Calendar: postal.NewCalendar(),
		Marks:    tasks.NewMarks(),
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, cfg.Location, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, tg, sched)

	if cfg.Messages.Startup != "" {
		if err := notifier.Broadcast(ctx, []string{config.DestinationGroup, config.DestinationPersonal}, cfg.Messages.Startup); err != nil {
			log.Warn("Failed to send startup message", "error", err)
		}
	}

	log.Info("Starting bot")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully")
	return 0
}
