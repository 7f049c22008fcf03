package daterange

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "plain date", input: "2024-03-15", want: Date{Year: 2024, Month: time.March, Day: 15}},
		{name: "leap day", input: "2024-02-29", want: Date{Year: 2024, Month: time.February, Day: 29}},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "timestamp rejected", input: "2024-03-15T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	late := time.Date(2024, time.March, 10, 23, 59, 0, 0, loc)
	early := time.Date(2024, time.March, 10, 0, 1, 0, 0, loc)
	if DateOf(late) != DateOf(early) {
		t.Fatalf("expected same day, got %v and %v", DateOf(late), DateOf(early))
	}
	if got := DateOf(late).String(); got != "2024-03-10" {
		t.Errorf("expected 2024-03-10, got %s", got)
	}
}

func TestCompareAndAddDays(t *testing.T) {
	a := MustParseDate("2024-02-28")
	b := a.AddDays(2)
	if b.String() != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", b)
	}
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Errorf("ordering broken for %s and %s", a, b)
	}
	if got := a.DaysUntil(b); got != 2 {
		t.Errorf("expected 2 days, got %d", got)
	}
	if got := NewDate(2024, time.March, 32); got.String() != "2024-04-01" {
		t.Errorf("expected normalization to 2024-04-01, got %s", got)
	}
}

func TestDaysUntilLongSpans(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{name: "across epoch", from: MustParseDate("1969-12-31"), to: MustParseDate("1970-01-02"), want: 2},
		{name: "four centuries", from: MustParseDate("2000-01-01"), to: MustParseDate("2400-01-01"), want: 146097},
		{name: "whole civil range", from: MustParseDate("0001-01-01"), to: MustParseDate("9999-12-31"), want: 3652058},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
			if got := tt.to.DaysUntil(tt.from); got != -tt.want {
				t.Errorf("reverse DaysUntil = %d, want %d", got, -tt.want)
			}
			dr := DateRange{CheckIn: tt.from, CheckOut: tt.to}
			if dr.Nights() != tt.want {
				t.Errorf("Nights = %d, want %d", dr.Nights(), tt.want)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	payload := struct {
		Day Date `json:"day"`
	}{Day: MustParseDate("2024-03-20")}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"day":"2024-03-20"}` {
		t.Fatalf("unexpected json %s", data)
	}
	var decoded struct {
		Day Date `json:"day"`
	}
	if err := json.Unmarshal([]byte(`{"day":"2024-13-01"}`), &decoded); err == nil {
		t.Fatal("expected error for month 13")
	}
}

func TestRangeValidation(t *testing.T) {
	in := MustParseDate("2024-03-15")
	if _, err := New(in, in.AddDays(-1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	zero, err := New(in, in)
	if err != nil {
		t.Fatalf("zero-night range rejected: %v", err)
	}
	if zero.Nights() != 0 {
		t.Errorf("expected 0 nights, got %d", zero.Nights())
	}
	if _, err := New(Date{}, in); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected unset check-in to be rejected, got %v", err)
	}
}

func TestRangeMembership(t *testing.T) {
	dr, err := New(MustParseDate("2024-03-15"), MustParseDate("2024-03-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dr.Nights() != 5 {
		t.Errorf("expected 5 nights, got %d", dr.Nights())
	}
	if !dr.ContainsDate(dr.CheckIn) || !dr.ContainsDate(dr.CheckOut) {
		t.Error("closed range must contain its endpoints")
	}
	if dr.StrictlyContains(dr.CheckIn) || dr.StrictlyContains(dr.CheckOut) {
		t.Error("strict containment must exclude endpoints")
	}
	if !dr.StrictlyContains(MustParseDate("2024-03-17")) {
		t.Error("expected 03-17 inside the range")
	}
	if got := len(dr.Days()); got != 6 {
		t.Errorf("expected 6 days, got %d", got)
	}
	other := DateRange{CheckIn: MustParseDate("2024-03-20"), CheckOut: MustParseDate("2024-03-22")}
	if !dr.Overlaps(other) {
		t.Error("ranges sharing an endpoint overlap")
	}
}
