package handlers

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/store"
)

// printer renders prices with thousands separators (e.g. €48,000.25).
var printer = message.NewPrinter(language.English)

// displayDate renders a date with its month name, e.g. "15 Mar 1990".
func displayDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// displayDay renders a date without the year, e.g. "15 Mar".
func displayDay(t time.Time) string {
	return t.Format("2 Jan")
}

// buildBirthdaysReply renders the full grouped birthday list with age and
// countdown annotations, the next-birthday footer, and a missing-count hint.
func buildBirthdaysReply(groups []store.Group, today time.Time) string {
	var b strings.Builder
	b.WriteString("📅 Birthday list!\n\n")

	var missing int
	var nextName string
	nextDays := -1

	for _, g := range groups {
		b.WriteString(g.Name + ":\n")
		for _, r := range g.Records {
			if r.Date == nil {
				fmt.Fprintf(&b, "%s: Birthday not set\n", r.Name)
				missing++
				continue
			}

			days := r.Date.DaysUntil(today)
			age := r.Date.AgeTurning(today)
			if days > 0 {
				age-- // still their current age until the day itself
			}
			fmt.Fprintf(&b, "%s: %s (%d years old, %d days left)\n", r.Name, displayDate(r.Date.Time), age, days)

			if nextDays < 0 || days < nextDays {
				nextDays = days
				nextName = r.Name
			}
		}
		b.WriteString("\n")
	}

	if nextName != "" {
		fmt.Fprintf(&b, "🎂 The next birthday is %s's in %d days\n\n", nextName, nextDays)
	}
	b.WriteString("See the birthdays in the next 30 days with /soon!")

	switch missing {
	case 0:
	case 1:
		b.WriteString("\n\nThere is still 1 birthday missing. You can add it using /add Name DD-MM-YYYY.")
	default:
		fmt.Fprintf(&b, "\n\nThere are still %d birthdays missing. You can add them using /add Name DD-MM-YYYY.", missing)
	}
	return b.String()
}

// buildMissingReply lists everyone without a recorded birthday.
func buildMissingReply(missing []store.Missing, allSetMsg string) string {
	if len(missing) == 0 {
		return allSetMsg
	}

	var b strings.Builder
	b.WriteString("The following names do not have birthdays yet:\n\n")
	for _, m := range missing {
		fmt.Fprintf(&b, "%s: %s\n", m.Group, m.Name)
	}
	b.WriteString("\nUse /add Name DD-MM-YYYY to add a birthday.")
	return b.String()
}

// buildSoonReply lists upcoming birthdays within the window.
func buildSoonReply(upcoming []store.Upcoming, today time.Time, emptyMsg string) string {
	if len(upcoming) == 0 {
		return emptyMsg
	}

	var b strings.Builder
	b.WriteString("Upcoming birthdays in the next 30 days:\n\n")
	for _, u := range upcoming {
		fmt.Fprintf(&b, "%s: %s (in %d days)\n", u.Name, displayDay(u.Date.NextOccurrence(today)), u.DaysUntil)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildQuoteReply renders the Bitcoin quote in the /bitcoin reply format.
func buildQuoteReply(q *bitcoin.Quote, stale bool) string {
	changeMarker, changeText := "❓", "N/A (API error)"
	if q.Change24h != nil {
		switch {
		case *q.Change24h > 0:
			changeMarker = "🟢"
		case *q.Change24h < 0:
			changeMarker = "🔴"
		default:
			changeMarker = "⚪️"
		}
		changeText = fmt.Sprintf("%.2f%%", *q.Change24h)
	}

	var b strings.Builder
	b.WriteString("Bitcoin Price:\n")
	printer.Fprintf(&b, "💰 Current Price: €%.2f\n", q.PriceEUR)
	fmt.Fprintf(&b, "%s 24h Change: %s\n", changeMarker, changeText)
	fmt.Fprintf(&b, "%s Suggested Fee: %d sat/vB\n\n", feeMarker(q.FastestFee), q.FastestFee)
	b.WriteString("Data provided by Mempool.space and CoinGecko")

	if stale {
		b.WriteString("\n\n⚠️ Upstream is unreachable, this is the last known price.")
	}
	return b.String()
}

// feeMarker grades the suggested fee from amazing to painful.
func feeMarker(fee int) string {
	switch {
	case fee <= 1:
		return "🤩"
	case fee <= 10:
		return "😃"
	case fee <= 20:
		return "😐"
	case fee <= 100:
		return "😕"
	default:
		return "😱"
	}
}
