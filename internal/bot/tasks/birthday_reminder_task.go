package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/bdaybot/internal/config"
)

// newBirthdayReminderTask creates the daily birthday check. It congratulates
// people whose birthday is today, reminds the chats a day ahead, and flags
// the postcard send date computed from Dutch postal workdays. Every
// notification is keyed through Marks so reruns within the same day stay
// quiet.
func newBirthdayReminderTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "birthday_reminder")

	return func(ctx context.Context) error {
		now := deps.now()
		// Midnight UTC of the local date, matching the convention of
		// store.Date arithmetic.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		groups := deps.Store.ListAll()
		destinations := deps.Config.Scheduler.Tasks[config.TaskBirthdayReminder].Destinations

		var notified int
		for _, g := range groups {
			for _, r := range g.Records {
				if r.Date == nil {
					continue
				}

				next := r.Date.NextOccurrence(today)
				days := r.Date.DaysUntil(today)

				switch days {
				case 0:
					if deps.Marks.Claim(now, "congrats:"+r.Name) {
						text := fmt.Sprintf("🎉 Happy birthday, %s! 🎂 They turn %d today!", r.Name, r.Date.AgeTurning(today))
						if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
							log.ErrorContext(ctx, "Failed to send congratulations", "name", r.Name, "error", err)
						} else {
							notified++
						}
					}
				case 1:
					if deps.Marks.Claim(now, "reminder:"+r.Name) {
						text := fmt.Sprintf("🗓 %s's birthday is tomorrow! They turn %d.", r.Name, r.Date.AgeTurning(today))
						if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
							log.ErrorContext(ctx, "Failed to send reminder", "name", r.Name, "error", err)
						} else {
							notified++
						}
					}
				}

				if deps.Calendar.SendDate(next).Equal(today) && days != 0 {
					if deps.Marks.Claim(now, "postcard:"+r.Name) {
						text := fmt.Sprintf("📮 Today is the day to send %s a postcard! Their birthday is on %s.", r.Name, next.Format("2 Jan"))
						if err := deps.Notifier.Broadcast(ctx, destinations, text); err != nil {
							log.ErrorContext(ctx, "Failed to send postcard notice", "name", r.Name, "error", err)
						} else {
							notified++
						}
					}
				}
			}
		}

		log.InfoContext(ctx, "Birthday reminder run completed", "notifications", notified)
		return nil
	}
}
