package calendar

import (
	"errors"
	"fmt"
	"time"

	"staycal/internal/domain/shared/daterange"
)

const monthLayout = "2006-01"

var ErrInvalidMonth = errors.New("calendar: invalid month")

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d daterange.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

func ParseMonth(value string) (Month, error) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) First() daterange.Date {
	return daterange.NewDate(m.Year, m.Month, 1)
}

func (m Month) Last() daterange.Date {
	return daterange.NewDate(m.Year, m.Month+1, 0)
}

func (m Month) Contains(d daterange.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

func (m Month) Next() Month {
	return MonthOf(daterange.NewDate(m.Year, m.Month+1, 1))
}

func (m Month) Prev() Month {
	return MonthOf(daterange.NewDate(m.Year, m.Month-1, 1))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
