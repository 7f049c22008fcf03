package dto

import (
	"fmt"

	"staycal/internal/domain/reservation"
	"staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

type Selection struct {
	SessionID  string `json:"session_id"`
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	Mode       string `json:"mode"`
	Nights     int    `json:"nights"`
	Summary    string `json:"summary"`
	// Changed is false when the last select call was rejected (past or reserved date).
	Changed bool `json:"changed"`
}

func MapSelection(sessionID, propertyID string, st selection.State) Selection {
	return Selection{
		SessionID:  sessionID,
		PropertyID: propertyID,
		CheckIn:    st.CheckIn.String(),
		CheckOut:   st.CheckOut.String(),
		Mode:       string(st.Mode()),
		Nights:     st.Nights(),
		Summary:    Summary(st),
	}
}

// Summary is the one-line text shown next to the calendar.
func Summary(st selection.State) string {
	switch st.Mode() {
	case selection.ModeAwaitingCheckOut:
		return fmt.Sprintf("Check-in %s, select a check-out date", formatDay(st.CheckIn))
	case selection.ModeComplete:
		return reservation.NightsLabel(st.Nights()) + " selected"
	default:
		return "Select a check-in date"
	}
}

func formatDay(d daterange.Date) string {
	return d.Time().Format("Mon, Jan 2")
}
