package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgard/bdaybot/internal/bitcoin"
	"github.com/edgard/bdaybot/internal/store"
)

func mustDate(t *testing.T, s string) *store.Date {
	t.Helper()
	d, err := store.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestBuildBirthdaysReply(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	groups := []store.Group{
		{
			Name: "Family",
			Records: []store.Record{
				{Name: "Alice", Date: mustDate(t, "15-06-1990")},
				{Name: "Bob"},
			},
		},
		{
			Name: "Friends",
			Records: []store.Record{
				{Name: "Carol", Date: mustDate(t, "01-01-1985")},
			},
		},
	}

	reply := buildBirthdaysReply(groups, today)

	require.Contains(t, reply, "Family:")
	require.Contains(t, reply, "Friends:")
	// Alice turns 35 on 15 June; on 10 June she is still 34 with 5 days left.
	require.Contains(t, reply, "Alice: 15 Jun 1990 (34 years old, 5 days left)")
	require.Contains(t, reply, "Bob: Birthday not set")
	require.Contains(t, reply, "The next birthday is Alice's in 5 days")
	require.Contains(t, reply, "There is still 1 birthday missing")
	require.Contains(t, reply, "/soon")
}

func TestBuildBirthdaysReplyOnTheDay(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	groups := []store.Group{
		{Name: "Family", Records: []store.Record{{Name: "Alice", Date: mustDate(t, "15-06-1990")}}},
	}

	reply := buildBirthdaysReply(groups, today)
	require.Contains(t, reply, "Alice: 15 Jun 1990 (35 years old, 0 days left)")
	require.NotContains(t, reply, "missing")
}

func TestBuildMissingReply(t *testing.T) {
	require.Equal(t, "all set", buildMissingReply(nil, "all set"))

	reply := buildMissingReply([]store.Missing{
		{Group: "Family", Name: "Bob"},
		{Group: "Friends", Name: "Dave"},
	}, "all set")
	require.Contains(t, reply, "Family: Bob")
	require.Contains(t, reply, "Friends: Dave")
	require.Contains(t, reply, "/add Name DD-MM-YYYY")
}

func TestBuildSoonReply(t *testing.T) {
	today := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "none", buildSoonReply(nil, today, "none"))

	upcoming := []store.Upcoming{
		{Name: "Eve", Date: *mustDate(t, "02-01-1992"), DaysUntil: 5, Turning: 34},
	}
	reply := buildSoonReply(upcoming, today, "none")
	require.Contains(t, reply, "Eve: 2 Jan (in 5 days)")
}

func TestBuildQuoteReply(t *testing.T) {
	change := 2.51
	q := &bitcoin.Quote{PriceEUR: 48000.25, Change24h: &change, FastestFee: 12}

	reply := buildQuoteReply(q, false)
	require.Contains(t, reply, "€48,000.25")
	require.Contains(t, reply, "🟢 24h Change: 2.51%")
	require.Contains(t, reply, "😐 Suggested Fee: 12 sat/vB")
	require.NotContains(t, reply, "last known price")
}

func TestBuildQuoteReplyDegradedAndStale(t *testing.T) {
	q := &bitcoin.Quote{PriceEUR: 100.00, FastestFee: 1}

	reply := buildQuoteReply(q, true)
	require.Contains(t, reply, "❓ 24h Change: N/A (API error)")
	require.Contains(t, reply, "🤩 Suggested Fee: 1 sat/vB")
	require.Contains(t, reply, "last known price")
}

func TestFeeMarker(t *testing.T) {
	require.Equal(t, "🤩", feeMarker(1))
	require.Equal(t, "😃", feeMarker(10))
	require.Equal(t, "😐", feeMarker(20))
	require.Equal(t, "😕", feeMarker(100))
	require.Equal(t, "😱", feeMarker(101))
}
