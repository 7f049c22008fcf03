package selection

import (
	"context"
	"log/slog"
	"strings"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	availabilityapp "staycal/internal/app/handlers/availability"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

const (
	selectDateKey = "selection.select"
	clearKey      = "selection.clear"
)

// SelectDateCommand is one click on a calendar cell.
type SelectDateCommand struct {
	SessionID  string `validate:"required,max=128"`
	PropertyID string `validate:"required,max=128"`
	Date       string `validate:"required,isodate"`
}

func (c SelectDateCommand) Key() string { return selectDateKey }

type ClearCommand struct {
	SessionID  string `validate:"required,max=128"`
	PropertyID string `validate:"required,max=128"`
}

func (c ClearCommand) Key() string { return clearKey }

type Handler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
	Logger     *slog.Logger
}

func (h *Handler) Select(ctx context.Context, cmd SelectDateCommand) (dto.Selection, error) {
	day, err := daterange.ParseDate(strings.TrimSpace(cmd.Date))
	if err != nil {
		return dto.Selection{}, err
	}
	return h.apply(ctx, cmd.SessionID, cmd.PropertyID, func(s *domainselection.Selector) domainselection.State {
		return s.Select(day)
	})
}

func (h *Handler) Clear(ctx context.Context, cmd ClearCommand) (dto.Selection, error) {
	return h.apply(ctx, cmd.SessionID, cmd.PropertyID, func(s *domainselection.Selector) domainselection.State {
		return s.Clear()
	})
}

func (h *Handler) apply(ctx context.Context, sessionID, property string, op func(*domainselection.Selector) domainselection.State) (dto.Selection, error) {
	unit, ctx, finish, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return dto.Selection{}, err
	}
	defer finish.Close()

	propertyID := domainavailability.PropertyID(property)
	idx, err := availabilityapp.LoadIndex(ctx, unit.Availability(), propertyID, h.Logger)
	if err != nil {
		return dto.Selection{}, err
	}
	stored, err := support.StoredState(ctx, unit.Selections(), sessionID, propertyID)
	if err != nil {
		return dto.Selection{}, err
	}
	selector := domainselection.Resume(stored, idx, h.Clock.Today())
	before := selector.State()
	after := op(selector)

	if after != stored {
		session := &domainselection.Session{
			ID:         sessionID,
			PropertyID: propertyID,
			State:      after,
			UpdatedAt:  h.Clock.Instant(),
		}
		if err := unit.Selections().Save(ctx, session); err != nil {
			return dto.Selection{}, err
		}
	}
	if err := finish.Commit(); err != nil {
		return dto.Selection{}, err
	}

	out := dto.MapSelection(sessionID, property, after)
	out.Changed = after != before
	return out, nil
}

// SelectHandler and ClearHandler expose Handler's operations to the command bus.
type SelectHandler struct{ *Handler }

func (h SelectHandler) Handle(ctx context.Context, cmd SelectDateCommand) (dto.Selection, error) {
	return h.Select(ctx, cmd)
}

type ClearHandler struct{ *Handler }

func (h ClearHandler) Handle(ctx context.Context, cmd ClearCommand) (dto.Selection, error) {
	return h.Clear(ctx, cmd)
}

var (
	_ commands.Handler[SelectDateCommand, dto.Selection] = SelectHandler{}
	_ commands.Handler[ClearCommand, dto.Selection]      = ClearHandler{}
)
