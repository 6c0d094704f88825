package tasks

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/config"
	"github.com/edgard/bdaybot/internal/postal"
	"github.com/edgard/bdaybot/internal/store"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Broadcast(_ context.Context, _ []string, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

type fakeStore struct {
	groups []store.Group
}

func (f *fakeStore) AddOrUpdate(_, _ string, _ store.Date, _ bool) (store.AddOutcome, error) {
	return store.AddCreated, nil
}
func (f *fakeStore) Delete(string) error                          { return nil }
func (f *fakeStore) ListAll() []store.Group                       { return f.groups }
func (f *fakeStore) ListMissing() []store.Missing                 { return nil }
func (f *fakeStore) ListUpcoming(time.Time, int) []store.Upcoming { return nil }

type fakeBitcoin struct {
	quote *bitcoin.Quote
	err   error
}

func (f *fakeBitcoin) Quote(context.Context) (*bitcoin.Quote, error) { return f.quote, f.err }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	return &config.Config{
		Location: loc,
		Bitcoin:  config.BitcoinConfig{ThresholdStep: 1000, ChangeAlertPercent: 5},
		Scheduler: config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
			config.TaskBirthdayReminder: {Enabled: true, Destinations: []string{config.DestinationGroup}},
			config.TaskPriceAlert:       {Enabled: true, Destinations: []string{config.DestinationGroup}},
		}},
	}
}

func testDate(t *testing.T, s string) *store.Date {
	t.Helper()
	d, err := store.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBirthdayReminderTask(t *testing.T) {
	// Wednesday 10 June 2026, a plain NL workday.
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)

	st := &fakeStore{groups: []store.Group{{
		Name: "Friends",
		Records: []store.Record{
			{Name: "Alice", Date: testDate(t, "10-06-1990")}, // today
			{Name: "Bob", Date: testDate(t, "11-06-1985")},   // tomorrow
			{Name: "Carol", Date: testDate(t, "20-08-2000")}, // far away
			{Name: "Dave"}, // no date
		},
	}}}

	notifier := &fakeNotifier{}
	deps := TaskDeps{
		Logger:   slog.Default(),
		Config:   testConfig(t),
		Store:    st,
		Notifier: notifier,
		Calendar: postal.NewCalendar(),
		Marks:    NewMarks(),
		Now:      fixedNow(now),
	}

	task := newBirthdayReminderTask(deps)
	require.NoError(t, task(context.Background()))

	require.Len(t, notifier.sent, 2)
	require.Contains(t, notifier.sent[0], "Happy birthday, Alice")
	require.Contains(t, notifier.sent[0], "turn 36 today")
	require.Contains(t, notifier.sent[1], "Bob's birthday is tomorrow")

	// The same day's rerun stays quiet.
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 2)
}

func TestBirthdayReminderPostcard(t *testing.T) {
	// Friday 24 April 2026: send date for a birthday on Monday 27 April
	// (Koningsdag), since the lead runs over the weekend and the holiday.
	now := time.Date(2026, 4, 24, 8, 0, 0, 0, time.UTC)

	st := &fakeStore{groups: []store.Group{{
		Name:    "Friends",
		Records: []store.Record{{Name: "Willem", Date: testDate(t, "27-04-1967")}},
	}}}

	notifier := &fakeNotifier{}
	deps := TaskDeps{
		Logger:   slog.Default(),
		Config:   testConfig(t),
		Store:    st,
		Notifier: notifier,
		Calendar: postal.NewCalendar(),
		Marks:    NewMarks(),
		Now:      fixedNow(now),
	}

	require.NoError(t, newBirthdayReminderTask(deps)(context.Background()))

	require.Len(t, notifier.sent, 1)
	require.Contains(t, notifier.sent[0], "send Willem a postcard")
	require.Contains(t, notifier.sent[0], "27 Apr")
}

func TestPriceAlertThresholdCrossings(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	btc := &fakeBitcoin{quote: &bitcoin.Quote{PriceEUR: 47800}}
	notifier := &fakeNotifier{}
	deps := TaskDeps{
		Logger:   slog.Default(),
		Config:   testConfig(t),
		Bitcoin:  btc,
		Notifier: notifier,
		Marks:    NewMarks(),
		Now:      fixedNow(now),
	}

	task := newPriceAlertTask(deps)

	// First run establishes the baseline, no alert.
	require.NoError(t, task(context.Background()))
	require.Empty(t, notifier.sent)

	// Crossing €48,000 upward fires once.
	btc.quote = &bitcoin.Quote{PriceEUR: 48200}
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 1)
	require.Contains(t, notifier.sent[0], "climbed above €48,000")

	// Drifting within the same bucket stays quiet.
	btc.quote = &bitcoin.Quote{PriceEUR: 48900}
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 1)

	// Dropping back below fires the down alert.
	btc.quote = &bitcoin.Quote{PriceEUR: 47500}
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 2)
	require.Contains(t, notifier.sent[1], "dropped below €48,000")

	// A second upward crossing the same day is suppressed.
	btc.quote = &bitcoin.Quote{PriceEUR: 49100}
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 2)
}

func TestPriceAlertChangePercent(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	change := -6.2
	btc := &fakeBitcoin{quote: &bitcoin.Quote{PriceEUR: 47800, Change24h: &change}}
	notifier := &fakeNotifier{}
	deps := TaskDeps{
		Logger:   slog.Default(),
		Config:   testConfig(t),
		Bitcoin:  btc,
		Notifier: notifier,
		Marks:    NewMarks(),
		Now:      fixedNow(now),
	}

	task := newPriceAlertTask(deps)
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 1)
	require.Contains(t, notifier.sent[0], "down 6.20%")

	// Once per day only.
	require.NoError(t, task(context.Background()))
	require.Len(t, notifier.sent, 1)
}

func TestPriceAlertSkipsStaleQuote(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	btc := &fakeBitcoin{quote: &bitcoin.Quote{PriceEUR: 47800}, err: bitcoin.ErrStaleQuote}
	notifier := &fakeNotifier{}
	deps := TaskDeps{
		Logger:   slog.Default(),
		Config:   testConfig(t),
		Bitcoin:  btc,
		Notifier: notifier,
		Marks:    NewMarks(),
		Now:      fixedNow(now),
	}

	require.NoError(t, newPriceAlertTask(deps)(context.Background()))
	require.Empty(t, notifier.sent)
}
