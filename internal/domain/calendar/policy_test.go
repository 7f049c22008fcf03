package calendar

import (
	"testing"
	"time"

	"staycal/internal/domain/availability"
	"staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

func day(s string) daterange.Date { return daterange.MustParseDate(s) }

func TestClassifyPriority(t *testing.T) {
	today := day("2024-03-10")
	march := Month{Year: 2024, Month: time.March}
	idx := availability.Build([]availability.Record{
		{Date: "2024-03-05", IsAvailable: false},
		{Date: "2024-03-15", IsAvailable: false},
		{Date: "2024-03-17", IsAvailable: false},
		{Date: "2024-03-25", IsAvailable: false},
		{Date: "2024-03-26", IsAvailable: true},
	}, nil)
	complete := selection.State{CheckIn: day("2024-03-15"), CheckOut: day("2024-03-20")}

	tests := []struct {
		name  string
		date  string
		state selection.State
		want  Category
	}{
		{name: "previous month padding", date: "2024-02-27", state: complete, want: OutsideMonth},
		{name: "past and reserved", date: "2024-03-05", state: complete, want: Past},
		{name: "past", date: "2024-03-09", state: complete, want: Past},
		{name: "check-in on reserved date", date: "2024-03-15", state: complete, want: SelectedEndpoint},
		{name: "check-out", date: "2024-03-20", state: complete, want: SelectedEndpoint},
		{name: "reserved inside range", date: "2024-03-17", state: complete, want: InRange},
		{name: "inside range", date: "2024-03-18", state: complete, want: InRange},
		{name: "today", date: "2024-03-10", state: complete, want: Today},
		{name: "reserved", date: "2024-03-25", state: complete, want: Reserved},
		{name: "explicitly available", date: "2024-03-26", state: complete, want: Available},
		{name: "unknown defaults to available", date: "2024-03-27", state: complete, want: Available},
		{name: "awaiting checkout has no range", date: "2024-03-18", state: selection.State{CheckIn: day("2024-03-15")}, want: Available},
		{name: "awaiting checkout endpoint", date: "2024-03-15", state: selection.State{CheckIn: day("2024-03-15")}, want: SelectedEndpoint},
		{name: "today selected", date: "2024-03-10", state: selection.State{CheckIn: day("2024-03-10")}, want: SelectedEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(day(tt.date), tt.state, idx, march, today); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestClassifyCrossMonthCollision(t *testing.T) {
	today := day("2024-03-01")
	// Selection ends on April 2, which also shows up as padding in March's grid.
	state := selection.State{CheckIn: day("2024-03-28"), CheckOut: day("2024-04-02")}
	march := Month{Year: 2024, Month: time.March}
	for _, d := range Generate(march) {
		got := Classify(d, state, nil, march, today)
		if !march.Contains(d) && got != OutsideMonth {
			t.Fatalf("%s outside the visible month classified %s", d, got)
		}
	}
	april := Month{Year: 2024, Month: time.April}
	if got := Classify(day("2024-04-02"), state, nil, april, today); got != SelectedEndpoint {
		t.Errorf("in April's grid the checkout is an endpoint, got %s", got)
	}
}

func TestClassifyTotal(t *testing.T) {
	valid := map[Category]bool{
		OutsideMonth: true, Past: true, SelectedEndpoint: true, InRange: true,
		Today: true, Reserved: true, Available: true,
	}
	today := day("2024-03-10")
	state := selection.State{CheckIn: day("2024-03-12"), CheckOut: day("2024-04-03")}
	idx := availability.Build([]availability.Record{{Date: "2024-03-30", IsAvailable: false}}, nil)
	for _, m := range []Month{{2024, time.March}, {2024, time.April}} {
		for _, d := range Generate(m) {
			if got := Classify(d, state, idx, m, today); !valid[got] {
				t.Fatalf("%s: unexpected category %q", d, got)
			}
		}
	}
}

func TestSelectable(t *testing.T) {
	today := day("2024-03-10")
	march := Month{Year: 2024, Month: time.March}
	idx := availability.Build([]availability.Record{
		{Date: "2024-03-15", IsAvailable: false},
		{Date: "2024-03-17", IsAvailable: false},
	}, nil)
	state := selection.State{CheckIn: day("2024-03-12"), CheckOut: day("2024-03-17")}

	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-02-29", want: false},
		{date: "2024-03-09", want: false},
		{date: "2024-03-10", want: true},
		{date: "2024-03-12", want: true},
		{date: "2024-03-14", want: true},
		{date: "2024-03-15", want: false},
		{date: "2024-03-17", want: false},
		{date: "2024-03-20", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d := day(tt.date)
			if got := Selectable(d, idx, march, today); got != tt.want {
				t.Errorf("Selectable(%s) = %v, want %v (category %s)", tt.date, got, tt.want, Classify(d, state, idx, march, today))
			}
		})
	}
}

func TestSelectableMatchesSelector(t *testing.T) {
	today := day("2024-03-10")
	march := Month{Year: 2024, Month: time.March}
	idx := availability.Build([]availability.Record{{Date: "2024-03-15", IsAvailable: false}}, nil)
	start := selection.State{CheckIn: day("2024-03-12"), CheckOut: day("2024-03-17")}

	for _, d := range Generate(march) {
		if !march.Contains(d) {
			continue
		}
		sel := selection.Resume(start, idx, today)
		changed := sel.Select(d) != start
		if changed != Selectable(d, idx, march, today) {
			t.Errorf("%s: selector changed=%v but Selectable=%v", d, changed, Selectable(d, idx, march, today))
		}
	}
}
