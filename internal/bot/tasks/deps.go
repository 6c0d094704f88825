// Package tasks implements the scheduled tasks of the birthday bot: the
// daily birthday reminder run and the hourly Bitcoin price alert run.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/config"
	"github.com/edgard/bdaybot/internal/postal"
	"github.com/edgard/bdaybot/internal/store"
)

// Notifier delivers a message to the configured destinations. Satisfied by
// telegram.Notifier.
type Notifier interface {
	Broadcast(ctx context.Context, destinations []string, text string) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    store.Store
	Bitcoin  bitcoin.Client
	Notifier Notifier
	Calendar *postal.Calendar
	Marks    *Marks

	// Now returns the current time; nil means time.Now. Tasks convert it
	// to the configured timezone themselves.
	Now func() time.Time
}

func (d TaskDeps) now() time.Time {
	if d.Now != nil {
		return d.Now().In(d.Config.Location)
	}
	return time.Now().In(d.Config.Location)
}
