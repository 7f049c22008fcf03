package calendar

import (
	"testing"
	"time"

	"staycal/internal/domain/shared/daterange"
)

func TestGenerateScenarioD(t *testing.T) {
	grid := Generate(Month{Year: 2024, Month: time.March})
	if got := grid[0].String(); got != "2024-02-26" {
		t.Errorf("first cell = %s, want 2024-02-26", got)
	}
	if got := grid[len(grid)-1].String(); got != "2024-03-31" {
		t.Errorf("last cell = %s, want 2024-03-31", got)
	}
	if len(grid) != 35 {
		t.Errorf("expected 35 cells, got %d", len(grid))
	}
}

func TestGenerateCompleteness(t *testing.T) {
	for _, weekStart := range []time.Weekday{time.Monday, time.Sunday, time.Saturday} {
		for year := 2023; year <= 2025; year++ {
			for month := time.January; month <= time.December; month++ {
				m := Month{Year: year, Month: month}
				grid := GenerateFrom(m, weekStart)
				if len(grid)%7 != 0 {
					t.Fatalf("%s/%s: length %d not a multiple of 7", m, weekStart, len(grid))
				}
				if grid[0].Weekday() != weekStart {
					t.Fatalf("%s/%s: grid starts on %s", m, weekStart, grid[0].Weekday())
				}
				seen := make(map[daterange.Date]int)
				for i, d := range grid {
					if i > 0 && grid[i-1].AddDays(1) != d {
						t.Fatalf("%s: gap between %s and %s", m, grid[i-1], d)
					}
					if m.Contains(d) {
						seen[d]++
					}
				}
				if len(seen) != m.Last().Day {
					t.Fatalf("%s: %d distinct month days, want %d", m, len(seen), m.Last().Day)
				}
				for d, n := range seen {
					if n != 1 {
						t.Fatalf("%s: %s appears %d times", m, d, n)
					}
				}
			}
		}
	}
}

func TestGenerateNoPaddingWhenAligned(t *testing.T) {
	// April 2024 starts on a Monday and June 2024 ends on a Sunday.
	april := Generate(Month{Year: 2024, Month: time.April})
	if april[0].String() != "2024-04-01" {
		t.Errorf("expected no leading padding, first cell %s", april[0])
	}
	june := Generate(Month{Year: 2024, Month: time.June})
	if june[len(june)-1].String() != "2024-06-30" {
		t.Errorf("expected no trailing padding, last cell %s", june[len(june)-1])
	}
	feb := Generate(Month{Year: 2021, Month: time.February})
	if len(feb) != 28 {
		t.Errorf("February 2021 fits exactly four weeks, got %d cells", len(feb))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	m := Month{Year: 2024, Month: time.December}
	a, b := Generate(m), Generate(m)
	if len(a) != len(b) {
		t.Fatal("lengths differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %s vs %s", i, a[i], b[i])
		}
	}
	if a[len(a)-1].String() != "2025-01-05" {
		t.Errorf("December 2024 should pad into January, got %s", a[len(a)-1])
	}
}

func TestWeeks(t *testing.T) {
	rows := Weeks(Generate(Month{Year: 2024, Month: time.March}))
	if len(rows) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(rows))
	}
	for _, row := range rows {
		if len(row) != 7 || row[0].Weekday() != time.Monday {
			t.Fatalf("malformed week %v", row)
		}
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Next().String() != "2025-01" || m.Prev().String() != "2024-11" {
		t.Errorf("navigation across year boundary broken: %s %s", m.Next(), m.Prev())
	}
	if _, err := ParseMonth("2024-13"); err == nil {
		t.Error("expected error for month 13")
	}
}
