package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"staycal/internal/app/dto"
	"staycal/internal/app/support"
	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/calendar"
	domainselection "staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
	"staycal/internal/infra/storage/memory"
)

func newCalendarHandler(t *testing.T, now time.Time) (*GetCalendarHandler, *memory.SelectionRepository) {
	t.Helper()
	records := memory.NewAvailabilityRepository()
	err := records.Put(context.Background(), "villa", []domainavailability.Record{
		{Date: "2024-03-15", IsAvailable: false},
		{Date: "2024-03-22", IsAvailable: false},
		{Date: "2024-03-23", IsAvailable: true},
		{Date: "not-a-date", IsAvailable: false},
	}, true, time.Time{})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	sessions := memory.NewSelectionRepository()
	return &GetCalendarHandler{
		UoWFactory: memory.Factory{AvailabilityRepo: records, SelectionRepo: sessions},
		Clock:      support.FixedClock(now),
	}, sessions
}

func cellsByDate(m dto.CalendarMonth) map[string]dto.CalendarCell {
	out := map[string]dto.CalendarCell{}
	for _, week := range m.Weeks {
		for _, c := range week {
			out[c.Date] = c
		}
	}
	return out
}

func TestGetCalendarClassifiesCells(t *testing.T) {
	h, sessions := newCalendarHandler(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	err := sessions.Save(context.Background(), &domainselection.Session{
		ID:         "s1",
		PropertyID: "villa",
		State:      domainselection.State{CheckIn: daterange.MustParseDate("2024-03-12"), CheckOut: daterange.MustParseDate("2024-03-17")},
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	res, err := h.Handle(context.Background(), GetCalendarQuery{PropertyID: "villa", SessionID: "s1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Month != "2024-03" || res.PrevMonth != "" || res.NextMonth != "2024-04" {
		t.Errorf("navigation: month=%s prev=%q next=%s", res.Month, res.PrevMonth, res.NextMonth)
	}
	if len(res.Weeks) != 5 || res.Weeks[0][0].Date != "2024-02-26" {
		t.Fatalf("unexpected grid shape: %d weeks starting %s", len(res.Weeks), res.Weeks[0][0].Date)
	}
	if res.Weekdays[0] != "Mon" || res.Weekdays[6] != "Sun" {
		t.Errorf("weekday labels %v", res.Weekdays)
	}
	if !res.SpanHasReserved {
		t.Error("selection spans 03-15 which is reserved")
	}
	if res.Selection.Mode != "COMPLETE" || res.Selection.Nights != 5 {
		t.Errorf("selection %+v", res.Selection)
	}
	if len(res.ReservedDates) != 2 {
		t.Errorf("reserved dates %v", res.ReservedDates)
	}

	cells := cellsByDate(res)
	want := map[string]calendar.Category{
		"2024-02-26": calendar.OutsideMonth,
		"2024-03-09": calendar.Past,
		"2024-03-10": calendar.Today,
		"2024-03-12": calendar.SelectedEndpoint,
		"2024-03-15": calendar.InRange,
		"2024-03-17": calendar.SelectedEndpoint,
		"2024-03-22": calendar.Reserved,
		"2024-03-23": calendar.Available,
	}
	for date, cat := range want {
		if got := cells[date].Category; got != string(cat) {
			t.Errorf("%s: category %s, want %s", date, got, cat)
		}
	}
	if cells["2024-03-22"].Selectable || !cells["2024-03-23"].Selectable {
		t.Error("selectable flags wrong")
	}
	if cells["2024-03-15"].Selectable {
		t.Error("reserved day inside the selected range must not be selectable")
	}
	if !cells["2024-03-14"].Selectable || !cells["2024-03-12"].Selectable {
		t.Error("free days of the range stay selectable")
	}
}

func TestGetCalendarMonthNavigation(t *testing.T) {
	h, _ := newCalendarHandler(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	tests := []struct {
		name      string
		month     string
		weekStart string
		wantMonth string
		wantPrev  string
		wantFirst string
	}{
		{name: "past month clamps to today", month: "2024-01", weekStart: "", wantMonth: "2024-03", wantFirst: "2024-02-26"},
		{name: "future month", month: "2024-05", weekStart: WeekStartMonday, wantMonth: "2024-05", wantPrev: "2024-04", wantFirst: "2024-04-29"},
		{name: "sunday start", month: "2024-03", weekStart: WeekStartSunday, wantMonth: "2024-03", wantFirst: "2024-02-25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.Handle(context.Background(), GetCalendarQuery{PropertyID: "villa", Month: tt.month, WeekStart: tt.weekStart})
			if err != nil {
				t.Fatalf("handle: %v", err)
			}
			if res.Month != tt.wantMonth || res.PrevMonth != tt.wantPrev {
				t.Errorf("month=%s prev=%q", res.Month, res.PrevMonth)
			}
			if res.Weeks[0][0].Date != tt.wantFirst {
				t.Errorf("first cell %s, want %s", res.Weeks[0][0].Date, tt.wantFirst)
			}
			for _, week := range res.Weeks {
				if len(week) != 7 {
					t.Fatalf("week with %d cells", len(week))
				}
			}
		})
	}
}

func TestGetCalendarRejectsBadMonth(t *testing.T) {
	h, _ := newCalendarHandler(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	_, err := h.Handle(context.Background(), GetCalendarQuery{PropertyID: "villa", Month: "March"})
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestGetCalendarUnknownPropertyIsAllAvailable(t *testing.T) {
	h, _ := newCalendarHandler(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	res, err := h.Handle(context.Background(), GetCalendarQuery{PropertyID: "unknown"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(res.ReservedDates) != 0 {
		t.Errorf("reserved dates %v", res.ReservedDates)
	}
	if got := cellsByDate(res)["2024-03-15"].Category; got != string(calendar.Available) {
		t.Errorf("03-15 category %s", got)
	}
}
