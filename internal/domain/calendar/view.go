package calendar

import "staycal/internal/domain/shared/daterange"

// View is the month navigation state of a calendar widget.
type View struct {
	Visible Month
}

func NewView(today daterange.Date) View {
	return View{Visible: MonthOf(today)}
}

// Clamp opens the view on m, or on today's month when m lies before it.
func Clamp(m Month, today daterange.Date) View {
	floor := MonthOf(today)
	if m.Before(floor) {
		return View{Visible: floor}
	}
	return View{Visible: m}
}

func (v View) Next() View {
	return View{Visible: v.Visible.Next()}
}

// Previous moves one month back unless that would leave today's month behind.
func (v View) Previous(today daterange.Date) View {
	if !v.CanGoBack(today) {
		return v
	}
	return View{Visible: v.Visible.Prev()}
}

func (v View) CanGoBack(today daterange.Date) bool {
	return MonthOf(today).Before(v.Visible)
}
