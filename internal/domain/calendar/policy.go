package calendar

import (
	"staycal/internal/domain/availability"
	"staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

// Category is the display class of a grid cell.
type Category string

const (
	OutsideMonth     Category = "OUTSIDE_MONTH"
	Past             Category = "PAST"
	SelectedEndpoint Category = "SELECTED_ENDPOINT"
	InRange          Category = "IN_RANGE"
	Today            Category = "TODAY"
	Reserved         Category = "RESERVED"
	Available        Category = "AVAILABLE"
)

// Selectable reports whether a click on d can change the selection. It follows the
// selector's own rejection rules rather than the display category, which may hide a
// reserved day behind IN_RANGE or SELECTED_ENDPOINT.
func Selectable(d daterange.Date, lookup selection.Lookup, visible Month, today daterange.Date) bool {
	if !visible.Contains(d) || d.Before(today) {
		return false
	}
	return lookup == nil || lookup.StatusOf(d) != availability.StatusReserved
}

// Classify assigns exactly one category to d. The checks run in priority order and the
// first match wins, so a cell never carries two styles.
func Classify(d daterange.Date, state selection.State, lookup selection.Lookup, visible Month, today daterange.Date) Category {
	if !visible.Contains(d) {
		return OutsideMonth
	}
	if d.Before(today) {
		return Past
	}
	if (!state.CheckIn.IsZero() && d == state.CheckIn) || (!state.CheckOut.IsZero() && d == state.CheckOut) {
		return SelectedEndpoint
	}
	if state.Mode() == selection.ModeComplete && d.After(state.CheckIn) && d.Before(state.CheckOut) {
		return InRange
	}
	if d == today {
		return Today
	}
	if lookup != nil && lookup.StatusOf(d) == availability.StatusReserved {
		return Reserved
	}
	return Available
}
