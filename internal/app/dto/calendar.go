package dto

import (
	"staycal/internal/domain/calendar"
	"staycal/internal/domain/shared/daterange"
)

type CalendarCell struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	Category   string `json:"category"`
	Selectable bool   `json:"selectable"`
}

type CalendarMonth struct {
	PropertyID      string           `json:"property_id"`
	Month           string           `json:"month"`
	Today           string           `json:"today"`
	PrevMonth       string           `json:"prev_month,omitempty"`
	NextMonth       string           `json:"next_month"`
	Weekdays        []string         `json:"weekdays"`
	Weeks           [][]CalendarCell `json:"weeks"`
	ReservedDates   []string         `json:"reserved_dates"`
	Selection       Selection        `json:"selection"`
	SpanHasReserved bool             `json:"span_has_reserved"`
}

func MapCell(d daterange.Date, c calendar.Category, selectable bool) CalendarCell {
	return CalendarCell{Date: d.String(), Day: d.Day, Category: string(c), Selectable: selectable}
}

func MapDates(days []daterange.Date) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}
