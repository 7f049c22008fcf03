package availability

import (
	"context"
	"errors"
	"strings"
	"time"

	"staycal/internal/domain/shared/daterange"
	"staycal/internal/domain/shared/events"
)

var ErrPropertyRequired = errors.New("availability: property id is required")

type PropertyID string

// Record is one availability fact for a property as delivered by the data backend.
// Date is kept raw so malformed rows can be skipped at index time instead of failing the fetch.
type Record struct {
	Date        string `json:"date"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason,omitempty"`
}

// Repository stores availability records keyed by property and date.
type Repository interface {
	Records(ctx context.Context, id PropertyID) ([]Record, error)
	// Put upserts records by date, stamping them with at. With replace set, dates absent
	// from records are removed.
	Put(ctx context.Context, id PropertyID, records []Record, replace bool, at time.Time) error
}

// Sheet is the write-side view of a property's records: owners and the booking backend
// submit batches through it so the repository always receives one row per date.
type Sheet struct {
	PropertyID PropertyID
	Records    []Record
	Skipped    int
	events.EventRecorder
}

// NewSheet normalizes a batch: dates are trimmed and canonicalized, unparseable rows are
// counted in Skipped and dropped, duplicates collapse to the last occurrence.
func NewSheet(id PropertyID, records []Record, now time.Time) (*Sheet, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, ErrPropertyRequired
	}
	sheet := &Sheet{PropertyID: id}
	position := make(map[daterange.Date]int, len(records))
	for _, rec := range records {
		day, err := daterange.ParseDate(strings.TrimSpace(rec.Date))
		if err != nil {
			sheet.Skipped++
			continue
		}
		rec.Date = day.String()
		rec.Reason = strings.TrimSpace(rec.Reason)
		if idx, ok := position[day]; ok {
			sheet.Records[idx] = rec
			continue
		}
		position[day] = len(sheet.Records)
		sheet.Records = append(sheet.Records, rec)
	}
	sheet.Record(RecordsUpdatedEvent(id, len(sheet.Records), sheet.Skipped, now))
	return sheet, nil
}
