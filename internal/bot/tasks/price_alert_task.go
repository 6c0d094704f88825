package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/config"
)

var pricePrinter = message.NewPrinter(language.English)

// newPriceAlertTask creates the hourly Bitcoin watch. It alerts when the
// price crosses a configured threshold step relative to the previous run,
// and when the 24h change exceeds the configured percentage. Alerts are
// edge-triggered against the last observed price and rate-limited to once
// per day per direction through Marks.
func newPriceAlertTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "price_alert")

	var lastPrice *float64

	return func(ctx context.Context) error {
		now := deps.now()
		destinations := deps.Config.Scheduler.Tasks[config.TaskPriceAlert].Destinations

		quote, err := deps.Bitcoin.Quote(ctx)
		if err != nil {
			if errors.Is(err, bitcoin.ErrStaleQuote) {
				// A stale price can't witness a real crossing; skip this run.
				log.WarnContext(ctx, "Skipping price alerts, upstream unavailable", "error", err)
				return nil
			}
			log.ErrorContext(ctx, "Failed to fetch Bitcoin quote", "error", err)
			return fmt.Errorf("price alert: %w", err)
		}

		price := quote.PriceEUR
		step := deps.Config.Bitcoin.ThresholdStep

		if lastPrice != nil {
			prevBucket := math.Floor(*lastPrice / step)
			curBucket := math.Floor(price / step)

			switch {
			case curBucket > prevBucket:
				if deps.Marks.Claim(now, "threshold:up") {
					text := pricePrinter.Sprintf("🚀 Bitcoin climbed above €%.0f! Current price: €%.2f", curBucket*step, price)
					if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
						log.ErrorContext(ctx, "Failed to send threshold alert", "error", err)
					}
				}
			case curBucket < prevBucket:
				if deps.Marks.Claim(now, "threshold:down") {
					text := pricePrinter.Sprintf("📉 Bitcoin dropped below €%.0f! Current price: €%.2f", prevBucket*step, price)
					if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
						log.ErrorContext(ctx, "Failed to send threshold alert", "error", err)
					}
				}
			}
		}
		lastPrice = &price

		if quote.Change24h != nil && math.Abs(*quote.Change24h) >= deps.Config.Bitcoin.ChangeAlertPercent {
			if deps.Marks.Claim(now, "change") {
				direction := "up"
				emoji := "🟢"
				if *quote.Change24h < 0 {
					direction = "down"
					emoji = "🔴"
				}
				text := pricePrinter.Sprintf("%s Bitcoin is %s %.2f%% over the last 24 hours. Current price: €%.2f", emoji, direction, math.Abs(*quote.Change24h), price)
				if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
					log.ErrorContext(ctx, "Failed to send change alert", "error", err)
				}
			}
		}

		log.DebugContext(ctx, "Price alert run completed", "price_eur", price)
		return nil
	}
}
