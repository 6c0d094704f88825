package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMarksClaimOncePerDay(t *testing.T) {
	m := NewMarks()
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	require.True(t, m.Claim(now, "congrats:Alice"))
	require.False(t, m.Claim(now, "congrats:Alice"))
	require.True(t, m.Claim(now, "congrats:Bob"))

	// Later the same day the key stays claimed.
	require.False(t, m.Claim(now.Add(10*time.Hour), "congrats:Alice"))

	// A new day resets everything.
	require.True(t, m.Claim(now.AddDate(0, 0, 1), "congrats:Alice"))
}
