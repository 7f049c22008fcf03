package support

import (
	"time"

	"staycal/internal/domain/shared/daterange"
)

// Clock supplies "today" to handlers. Domain code never reads the wall clock itself.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Clock) Instant() time.Time {
	return c.now().UTC()
}

// Today is the current calendar day in the configured location (UTC when unset).
func (c Clock) Today() daterange.Date {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return daterange.DateOf(c.now().In(loc))
}

// FixedClock returns a Clock frozen at t, in t's location.
func FixedClock(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location()}
}
