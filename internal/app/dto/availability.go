package dto

import domainavailability "staycal/internal/domain/availability"

type RecordsWritten struct {
	PropertyID string `json:"property_id"`
	Written    int    `json:"written"`
	Skipped    int    `json:"skipped"`
}

type AvailabilityRecord struct {
	Date        string `json:"date"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason,omitempty"`
}

func ToDomainRecords(in []AvailabilityRecord) []domainavailability.Record {
	out := make([]domainavailability.Record, 0, len(in))
	for _, r := range in {
		out = append(out, domainavailability.Record{Date: r.Date, IsAvailable: r.IsAvailable, Reason: r.Reason})
	}
	return out
}
