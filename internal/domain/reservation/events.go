package reservation

import "time"

type IntentSubmitted struct {
	IntentID    string    `json:"intent_id"`
	PropertyID  string    `json:"property_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Nights      int       `json:"nights"`
	Guests      int       `json:"guests"`
	SpanBlocked bool      `json:"span_blocked"`
	At          time.Time `json:"at"`
}

func (e IntentSubmitted) EventName() string     { return "reservation.intent_submitted" }
func (e IntentSubmitted) AggregateID() string   { return e.PropertyID }
func (e IntentSubmitted) OccurredAt() time.Time { return e.At }

func IntentSubmittedEvent(i *Intent) IntentSubmitted {
	return IntentSubmitted{
		IntentID:    string(i.ID),
		PropertyID:  string(i.PropertyID),
		CheckIn:     i.Range.CheckIn.String(),
		CheckOut:    i.Range.CheckOut.String(),
		Nights:      i.Range.Nights(),
		Guests:      i.Guests,
		SpanBlocked: i.SpanBlocked,
		At:          i.CreatedAt,
	}
}
