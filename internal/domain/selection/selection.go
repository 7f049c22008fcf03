package selection

import (
	"errors"

	"staycal/internal/domain/availability"
	"staycal/internal/domain/shared/daterange"
)

var ErrIncomplete = errors.New("selection: check-in and check-out are both required")

type Mode string

const (
	ModeEmpty            Mode = "EMPTY"
	ModeAwaitingCheckOut Mode = "AWAITING_CHECKOUT"
	ModeComplete         Mode = "COMPLETE"
)

// Lookup is the availability view the selector and the calendar policy need.
type Lookup interface {
	StatusOf(d daterange.Date) availability.Status
}

// State is the (checkIn, checkOut) pair. Zero dates mean unset; the mode is derived.
type State struct {
	CheckIn  daterange.Date `json:"check_in"`
	CheckOut daterange.Date `json:"check_out"`
}

func (s State) Mode() Mode {
	switch {
	case s.CheckIn.IsZero():
		return ModeEmpty
	case s.CheckOut.IsZero():
		return ModeAwaitingCheckOut
	default:
		return ModeComplete
	}
}

// Range returns the selected span once both ends are set.
func (s State) Range() (daterange.DateRange, error) {
	if s.Mode() != ModeComplete {
		return daterange.DateRange{}, ErrIncomplete
	}
	return daterange.New(s.CheckIn, s.CheckOut)
}

func (s State) Nights() int {
	dr, err := s.Range()
	if err != nil {
		return 0
	}
	return dr.Nights()
}

// Selector implements the two-click check-in/check-out protocol. It is not safe for
// concurrent use; each rendering context owns its own selector.
type Selector struct {
	state  State
	lookup Lookup
	today  daterange.Date
}

func New(lookup Lookup, today daterange.Date) *Selector {
	return &Selector{lookup: lookup, today: today}
}

// Resume continues from a stored state. A state that no longer satisfies the invariants
// for the given today (an endpoint slipped into the past, or malformed ordering) restarts empty.
func Resume(state State, lookup Lookup, today daterange.Date) *Selector {
	s := New(lookup, today)
	if valid(state, today) {
		s.state = state
	}
	return s
}

func valid(state State, today daterange.Date) bool {
	switch state.Mode() {
	case ModeEmpty:
		return true
	case ModeAwaitingCheckOut:
		return !state.CheckIn.Before(today)
	default:
		return !state.CheckIn.Before(today) && !state.CheckOut.Before(state.CheckIn)
	}
}

func (s *Selector) State() State {
	return s.state
}

// Select applies a click on d. Past or reserved dates leave the state untouched.
// Only the clicked endpoint is checked against availability, not the days between.
func (s *Selector) Select(d daterange.Date) State {
	if d.IsZero() || d.Before(s.today) {
		return s.state
	}
	if s.lookup != nil && s.lookup.StatusOf(d) == availability.StatusReserved {
		return s.state
	}
	switch s.state.Mode() {
	case ModeAwaitingCheckOut:
		if d.Before(s.state.CheckIn) {
			// an earlier click starts over from that day
			s.state = State{CheckIn: d}
			return s.state
		}
		s.state.CheckOut = d
	default:
		s.state = State{CheckIn: d}
	}
	return s.state
}

func (s *Selector) Clear() State {
	s.state = State{}
	return s.state
}
