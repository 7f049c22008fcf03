package availability

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"staycal/internal/domain/shared/daterange"
)

type Status int

const (
	// StatusUnknown means no record exists for the date; callers treat it as bookable.
	StatusUnknown Status = iota
	StatusAvailable
	StatusReserved
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusReserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// Index answers per-date availability for a single property. It is immutable once built.
type Index struct {
	status map[daterange.Date]Status
}

// Build indexes records by date. Later records win over earlier ones for the same date.
// Records with an unparseable date are logged and skipped.
func Build(records []Record, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	idx := &Index{status: make(map[daterange.Date]Status, len(records))}
	for i, rec := range records {
		day, err := daterange.ParseDate(strings.TrimSpace(rec.Date))
		if err != nil {
			logger.Warn("skipping availability record with malformed date", "position", i, "date", rec.Date)
			continue
		}
		if rec.IsAvailable {
			idx.status[day] = StatusAvailable
		} else {
			idx.status[day] = StatusReserved
		}
	}
	return idx
}

func (i *Index) StatusOf(d daterange.Date) Status {
	if i == nil {
		return StatusUnknown
	}
	return i.status[d]
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.status)
}

// Reserved returns the reserved dates in ascending order.
func (i *Index) Reserved() []daterange.Date {
	if i == nil {
		return nil
	}
	out := make([]daterange.Date, 0)
	for day, st := range i.status {
		if st == StatusReserved {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Before(out[b]) })
	return out
}

// AnyReserved reports whether some date of the span is reserved.
func (i *Index) AnyReserved(dr daterange.DateRange) bool {
	for _, day := range dr.Days() {
		if i.StatusOf(day) == StatusReserved {
			return true
		}
	}
	return false
}
