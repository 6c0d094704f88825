package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "15-03-1990"},
		{name: "leap day", input: "29-02-2020"},
		{name: "invalid calendar date", input: "31-02-2020", wantErr: true},
		{name: "leap day in non-leap year", input: "29-02-2021", wantErr: true},
		{name: "wrong separator", input: "15/03/1990", wantErr: true},
		{name: "single digit day", input: "5-03-1990", wantErr: true},
		{name: "year first", input: "1990-03-15", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing garbage", input: "15-03-1990x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.input, d.String())
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("01-12-1985")
	require.NoError(t, err)

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"01-12-1985"`, string(data))

	var back Date
	require.NoError(t, back.UnmarshalJSON(data))
	require.True(t, back.Equal(d.Time))
}

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		date  string
		today time.Time
		want  time.Time
		days  int
	}{
		{name: "later this year", date: "15-03-1990", today: day(2025, time.January, 10), want: day(2025, time.March, 15), days: 64},
		{name: "today", date: "15-03-1990", today: day(2025, time.March, 15), want: day(2025, time.March, 15), days: 0},
		{name: "wraps year boundary", date: "05-01-2000", today: day(2025, time.December, 28), want: day(2026, time.January, 5), days: 8},
		{name: "leap day normalizes to mar 1", date: "29-02-2020", today: day(2025, time.February, 1), want: day(2025, time.March, 1), days: 28},
		{name: "leap day in leap year stays", date: "29-02-2020", today: day(2028, time.February, 1), want: day(2028, time.February, 29), days: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			require.NoError(t, err)
			require.Equal(t, tt.want, d.NextOccurrence(tt.today))
			require.Equal(t, tt.days, d.DaysUntil(tt.today))
		})
	}
}

func TestAgeTurning(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("15-03-1990")
	require.NoError(t, err)

	// Before this year's birthday: turning 35 in 2025.
	require.Equal(t, 35, d.AgeTurning(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	// After it: next occurrence is in 2026.
	require.Equal(t, 36, d.AgeTurning(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
}
