package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and file format for birthdates.
const DateLayout = "02-01-2006"

// Date is a calendar date carried in DD-MM-YYYY form. It marshals to the
// same string representation it was parsed from, so records survive a
// load/save round trip unchanged.
type Date struct {
	time.Time
}

// ParseDate parses a strict DD-MM-YYYY date. Calendar-invalid inputs such
// as "31-02-2020" are rejected, as are inputs that merely resemble the
// layout (extra whitespace, single-digit fields).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if t.Format(DateLayout) != s {
		return Date{}, fmt.Errorf("invalid date %q: not in DD-MM-YYYY form", s)
	}
	return Date{t}, nil
}

// String returns the DD-MM-YYYY representation.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a DD-MM-YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a DD-MM-YYYY string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NextOccurrence returns the next anniversary of d on or after today,
// considering only the date part of today. A Feb 29 birthday in a non-leap
// year normalizes to Mar 1 (time.Date normalization).
func (d Date) NextOccurrence(today time.Time) time.Time {
	y, m, day := today.Date()
	todayDate := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)

	next := time.Date(y, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(todayDate) {
		next = time.Date(y+1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// DaysUntil returns the number of whole days from today until the next
// occurrence of d. Zero means the birthday is today.
func (d Date) DaysUntil(today time.Time) int {
	y, m, day := today.Date()
	todayDate := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return int(d.NextOccurrence(today).Sub(todayDate).Hours() / 24)
}

// AgeTurning returns the age the person reaches on the next occurrence of
// their birthday relative to today.
func (d Date) AgeTurning(today time.Time) int {
	return d.NextOccurrence(today).Year() - d.Year()
}
