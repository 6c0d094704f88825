package tasks

import (
	"sync"
	"time"
)

// Marks suppresses duplicate notifications within a single local day. Each
// notification claims a key; the first claim of a key per day wins, repeats
// are rejected until the day rolls over. State lives in memory only, so a
// restart may repeat at most one day's notifications.
type Marks struct {
	mu    sync.Mutex
	day   string
	fired map[string]struct{}
}

// NewMarks returns an empty mark set.
func NewMarks() *Marks {
	return &Marks{fired: make(map[string]struct{})}
}

// Claim records key for the day containing now and reports whether this was
// the first claim of that key today.
func (m *Marks) Claim(now time.Time, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := now.Format("2006-01-02")
	if day != m.day {
		m.day = day
		m.fired = make(map[string]struct{})
	}

	if _, ok := m.fired[key]; ok {
		return false
	}
	m.fired[key] = struct{}{}
	return true
}
