// Package datex provides zone-pinned calendar date and clock helpers.
//
// The tracker keys all records by the user's home time zone, not the machine
// zone, so that a meal logged from a laptop abroad still lands on the right
// calendar day. Dates are formatted as zero-padded YYYY-MM-DD and clock
// times as HH:MM, which keeps lexicographic order equal to chronological
// order.
package datex

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock yields the current time. The zero value uses the real clock in the
// given location; tests can pin Now.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a Clock for the named IANA zone, e.g. "Asia/Singapore".
func NewClock(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &Clock{Location: loc}, nil
}

func (c *Clock) now() time.Time {
	n := time.Now
	if c.Now != nil {
		n = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return n().In(loc)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.now().Format(DateLayout)
}

// TimeOfDay returns the current wall-clock time as HH:MM.
func (c *Clock) TimeOfDay() string {
	return c.now().Format(TimeLayout)
}

// PastDate returns the date daysAgo days before today as YYYY-MM-DD.
func (c *Clock) PastDate(daysAgo int) string {
	return c.now().AddDate(0, 0, -daysAgo).Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM clock time.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
