package availability

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"staycal/internal/app/dto"
	"staycal/internal/app/queries"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/calendar"
	"staycal/internal/domain/selection"
)

const getCalendarKey = "calendar.month"

const (
	WeekStartMonday = "monday"
	WeekStartSunday = "sunday"
)

// GetCalendarQuery renders one month of a property's booking calendar for a visitor.
type GetCalendarQuery struct {
	PropertyID string `validate:"required,max=128"`
	SessionID  string `validate:"max=128"`
	// Month is YYYY-MM; empty opens today's month. Months before today's are clamped.
	Month string
	// WeekStart is WeekStartMonday or WeekStartSunday; empty means Monday.
	WeekStart string `validate:"omitempty,oneof=monday sunday"`
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
	Logger     *slog.Logger
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.CalendarMonth, error) {
	today := h.Clock.Today()
	requested := calendar.MonthOf(today)
	if m := strings.TrimSpace(q.Month); m != "" {
		parsed, err := calendar.ParseMonth(m)
		if err != nil {
			return dto.CalendarMonth{}, err
		}
		requested = parsed
	}
	view := calendar.Clamp(requested, today)

	unit, ctx, finish, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.CalendarMonth{}, err
	}
	defer finish.Close()

	propertyID := domainavailability.PropertyID(q.PropertyID)
	idx, err := LoadIndex(ctx, unit.Availability(), propertyID, h.Logger)
	if err != nil {
		return dto.CalendarMonth{}, err
	}
	state, err := support.StoredState(ctx, unit.Selections(), q.SessionID, propertyID)
	if err != nil {
		return dto.CalendarMonth{}, err
	}
	state = selection.Resume(state, idx, today).State()

	weekStart := time.Monday
	if q.WeekStart == WeekStartSunday {
		weekStart = time.Sunday
	}
	grid := calendar.GenerateFrom(view.Visible, weekStart)
	weeks := make([][]dto.CalendarCell, 0, len(grid)/7)
	for _, row := range calendar.Weeks(grid) {
		cells := make([]dto.CalendarCell, 0, len(row))
		for _, d := range row {
			category := calendar.Classify(d, state, idx, view.Visible, today)
			cells = append(cells, dto.MapCell(d, category, calendar.Selectable(d, idx, view.Visible, today)))
		}
		weeks = append(weeks, cells)
	}

	out := dto.CalendarMonth{
		PropertyID:    q.PropertyID,
		Month:         view.Visible.String(),
		Today:         today.String(),
		NextMonth:     view.Next().Visible.String(),
		Weekdays:      weekdayLabels(weekStart),
		Weeks:         weeks,
		ReservedDates: dto.MapDates(idx.Reserved()),
		Selection:     dto.MapSelection(q.SessionID, q.PropertyID, state),
	}
	if view.CanGoBack(today) {
		out.PrevMonth = view.Previous(today).Visible.String()
	}
	if span, err := state.Range(); err == nil {
		out.SpanHasReserved = idx.AnyReserved(span)
	}
	return out, nil
}

func weekdayLabels(start time.Weekday) []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, time.Weekday((int(start) + i) % 7).String()[:3])
	}
	return out
}

var _ queries.Handler[GetCalendarQuery, dto.CalendarMonth] = (*GetCalendarHandler)(nil)
