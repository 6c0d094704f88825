// Package postal computes the last reasonable day to mail a birthday
// postcard within the Netherlands, accounting for weekends and Dutch
// public holidays.
package postal

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/nl"
)

// leadDays is the number of days before the birthday the card should be
// handed to the postal service, by birthday weekday. Weekend birthdays need
// extra lead because there is no Sunday delivery and Saturday pickup is
// unreliable.
var leadDays = map[time.Weekday]int{
	time.Monday:    1,
	time.Tuesday:   1,
	time.Wednesday: 1,
	time.Thursday:  1,
	time.Friday:    1,
	time.Saturday:  3,
	time.Sunday:    2,
}

// Calendar answers business-day questions for the Dutch postal service.
type Calendar struct {
	cal *cal.BusinessCalendar
}

// NewCalendar builds a Mon-Fri business calendar with Dutch public holidays.
func NewCalendar() *Calendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(nl.Holidays...)
	return &Calendar{cal: c}
}

// IsWorkday reports whether mail is collected and processed on the given day.
func (c *Calendar) IsWorkday(day time.Time) bool {
	return c.cal.IsWorkday(day)
}

// NextBusinessDay returns the first workday strictly after day.
func (c *Calendar) NextBusinessDay(day time.Time) time.Time {
	next := day.AddDate(0, 0, 1)
	for !c.cal.IsWorkday(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SendDate returns the day a postcard should be mailed so it arrives on or
// just before the birthday. The weekday-based lead time is backed off over
// weekends and holidays, and tightened until the estimated delivery (the
// next business day after sending) is no more than four days out.
func (c *Calendar) SendDate(birthday time.Time) time.Time {
	send := birthday.AddDate(0, 0, -leadDays[birthday.Weekday()])

	for !c.cal.IsWorkday(send) {
		send = send.AddDate(0, 0, -1)
	}

	delivery := c.NextBusinessDay(send)
	for delivery.Sub(send) > 4*24*time.Hour {
		send = send.AddDate(0, 0, -1)
		delivery = c.NextBusinessDay(send)
	}
	return send
}
