package daterange

import (
	"errors"
	"fmt"
	"time"
)

const (
	layout        = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must not be before checkin")
	ErrInvalidDate  = errors.New("daterange: invalid date")
)

// Date is a calendar day without a time-of-day component. The zero value means "unset".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate normalizes overflowing components (e.g. March 32 -> April 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return DateOf(t), nil
}

// MustParseDate panics on malformed input; intended for fixtures and tests.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysUntil counts calendar days from d to other (negative when other is earlier).
// It works on epoch days, so spans longer than time.Duration can hold stay exact.
func (d Date) DaysUntil(other Date) int {
	return int(other.epochDay() - d.epochDay())
}

// epochDay is the day number since 1970-01-01; Time is always midnight UTC.
func (d Date) epochDay() int64 {
	return d.Time().Unix() / secondsPerDay
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(layout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DateRange is a closed stay span [CheckIn, CheckOut]. CheckIn == CheckOut is a zero-night hold.
type DateRange struct {
	CheckIn  Date
	CheckOut Date
}

func New(checkIn, checkOut Date) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if dr.CheckOut.Before(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return dr.CheckIn.DaysUntil(dr.CheckOut)
}

func (dr DateRange) ContainsDate(d Date) bool {
	return !d.Before(dr.CheckIn) && !d.After(dr.CheckOut)
}

// StrictlyContains reports CheckIn < d < CheckOut.
func (dr DateRange) StrictlyContains(d Date) bool {
	return d.After(dr.CheckIn) && d.Before(dr.CheckOut)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.CheckIn.After(other.CheckOut) && !other.CheckIn.After(dr.CheckOut)
}

// Days lists every date of the span, endpoints included.
func (dr DateRange) Days() []Date {
	if dr.Validate() != nil {
		return nil
	}
	out := make([]Date, 0, dr.Nights()+1)
	for d := dr.CheckIn; !d.After(dr.CheckOut); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}
