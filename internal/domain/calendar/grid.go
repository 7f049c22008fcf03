package calendar

import (
	"time"

	"staycal/internal/domain/shared/daterange"
)

const daysPerWeek = 7

// Generate returns the dates of m padded with neighbouring-month days to whole
// Monday-first weeks.
func Generate(m Month) []daterange.Date {
	return GenerateFrom(m, time.Monday)
}

// GenerateFrom is Generate with a configurable first day of the week.
func GenerateFrom(m Month, weekStart time.Weekday) []daterange.Date {
	first, last := m.First(), m.Last()
	lead := (int(first.Weekday()) - int(weekStart) + daysPerWeek) % daysPerWeek
	trail := (int(weekStart) + daysPerWeek - 1 - int(last.Weekday())) % daysPerWeek

	start := first.AddDays(-lead)
	total := lead + last.Day + trail
	out := make([]daterange.Date, 0, total)
	for i := 0; i < total; i++ {
		out = append(out, start.AddDays(i))
	}
	return out
}

// Weeks splits a generated grid into rows of seven days.
func Weeks(grid []daterange.Date) [][]daterange.Date {
	rows := make([][]daterange.Date, 0, len(grid)/daysPerWeek)
	for i := 0; i+daysPerWeek <= len(grid); i += daysPerWeek {
		rows = append(rows, grid[i:i+daysPerWeek])
	}
	return rows
}
