package availability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"staycal/internal/domain/shared/daterange"
)

func TestBuildStatus(t *testing.T) {
	idx := Build([]Record{
		{Date: "2024-03-05", IsAvailable: false, Reason: "booked"},
		{Date: "2024-03-06", IsAvailable: true},
	}, nil)

	tests := []struct {
		name string
		date string
		want Status
	}{
		{name: "reserved row", date: "2024-03-05", want: StatusReserved},
		{name: "available row", date: "2024-03-06", want: StatusAvailable},
		{name: "missing row", date: "2024-03-07", want: StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.StatusOf(daterange.MustParseDate(tt.date)); got != tt.want {
				t.Errorf("StatusOf(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestBuildLastWriteWins(t *testing.T) {
	idx := Build([]Record{
		{Date: "2024-03-05", IsAvailable: false},
		{Date: " 2024-03-05 ", IsAvailable: true},
	}, nil)
	if got := idx.StatusOf(daterange.MustParseDate("2024-03-05")); got != StatusAvailable {
		t.Fatalf("expected later record to win, got %v", got)
	}
	if idx.Len() != 1 {
		t.Errorf("expected one indexed date, got %d", idx.Len())
	}
}

func TestBuildSkipsMalformedDates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	idx := Build([]Record{
		{Date: "05/03/2024", IsAvailable: false},
		{Date: "", IsAvailable: false},
		{Date: "2024-03-08", IsAvailable: false},
	}, logger)

	if idx.Len() != 1 {
		t.Fatalf("expected only the valid record indexed, got %d", idx.Len())
	}
	if got := strings.Count(buf.String(), "malformed date"); got != 2 {
		t.Errorf("expected 2 warnings, got %d: %s", got, buf.String())
	}
}

func TestNilIndexIsEmpty(t *testing.T) {
	var idx *Index
	if idx.StatusOf(daterange.MustParseDate("2024-01-01")) != StatusUnknown {
		t.Error("nil index must report unknown")
	}
	if idx.Len() != 0 || idx.Reserved() != nil {
		t.Error("nil index must be empty")
	}
}

func TestReservedSorted(t *testing.T) {
	idx := Build([]Record{
		{Date: "2024-03-09", IsAvailable: false},
		{Date: "2024-03-01", IsAvailable: false},
		{Date: "2024-03-04", IsAvailable: true},
	}, nil)
	got := idx.Reserved()
	if len(got) != 2 || got[0].String() != "2024-03-01" || got[1].String() != "2024-03-09" {
		t.Fatalf("unexpected reserved dates %v", got)
	}
	span := daterange.DateRange{CheckIn: daterange.MustParseDate("2024-03-08"), CheckOut: daterange.MustParseDate("2024-03-10")}
	if !idx.AnyReserved(span) {
		t.Error("expected span over 03-09 to contain a reserved date")
	}
}

func TestNewSheetNormalizes(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	sheet, err := NewSheet("villa-1", []Record{
		{Date: "2024-03-05", IsAvailable: true},
		{Date: "garbage", IsAvailable: false},
		{Date: "2024-03-05", IsAvailable: false, Reason: "  owner stay "},
		{Date: "2024-03-06", IsAvailable: false},
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Records) != 2 || sheet.Skipped != 1 {
		t.Fatalf("expected 2 records and 1 skipped, got %d and %d", len(sheet.Records), sheet.Skipped)
	}
	if sheet.Records[0].IsAvailable || sheet.Records[0].Reason != "owner stay" {
		t.Errorf("expected duplicate to keep last occurrence, got %+v", sheet.Records[0])
	}
	evs := sheet.PendingEvents()
	if len(evs) != 1 || evs[0].EventName() != "availability.records_updated" {
		t.Errorf("expected records_updated event, got %v", evs)
	}
	if _, err := NewSheet(" ", nil, now); err != ErrPropertyRequired {
		t.Errorf("expected ErrPropertyRequired, got %v", err)
	}
}
