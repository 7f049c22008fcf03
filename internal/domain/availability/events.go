package availability

import "time"

type RecordsUpdated struct {
	PropertyID string    `json:"property_id"`
	Written    int       `json:"written"`
	Skipped    int       `json:"skipped"`
	At         time.Time `json:"at"`
}

func (e RecordsUpdated) EventName() string     { return "availability.records_updated" }
func (e RecordsUpdated) AggregateID() string   { return e.PropertyID }
func (e RecordsUpdated) OccurredAt() time.Time { return e.At }

func RecordsUpdatedEvent(id PropertyID, written, skipped int, at time.Time) RecordsUpdated {
	return RecordsUpdated{PropertyID: string(id), Written: written, Skipped: skipped, At: at.UTC()}
}
